// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stress

import (
	"context"
	"fmt"

	"github.com/rubynodes/blobstress/internal/console"
	"github.com/rubynodes/blobstress/internal/logger"
)

// download fetches blobID from the aggregator once. attempt is 1 for the
// first read and 2 for the read expected to hit the aggregator cache.
func (r *Runner) download(ctx context.Context, blobID string, number, attempt int) Attempt {
	prefix := fmt.Sprintf("[DOWNLOAD %d Attempt %d]", number, attempt)

	res, err := r.client.Get(ctx, blobID)
	if err != nil {
		logger.Debugf("Download #%d attempt %d of %s failed: %v", number, attempt, blobID, err)
		r.console.Printf(console.Failure, "%s Error during download: %v", prefix, err)
		return Attempt{Err: err}
	}

	category := console.ColdRead
	if attempt > 1 {
		category = console.WarmRead
	}
	r.console.Printf(category, "%s Blob ID - %s - Response time: %.3f seconds", prefix, blobID, res.Latency.Seconds())
	r.metrics.DownloadLatency(ctx, res.Latency.Seconds(), attempt)
	return Attempt{Latency: res.Latency}
}
