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
	"errors"
	"fmt"
	"strings"

	"github.com/rubynodes/blobstress/internal/blob"
	"github.com/rubynodes/blobstress/internal/blobclient"
	"github.com/rubynodes/blobstress/internal/console"
	"github.com/rubynodes/blobstress/internal/logger"
	"github.com/rubynodes/blobstress/internal/monitor"
	"github.com/rubynodes/blobstress/internal/ratelimit"
)

// BlobClient is the subset of *blobclient.Client used by a run.
type BlobClient interface {
	Put(ctx context.Context, data []byte) (*blobclient.PutResult, error)
	Get(ctx context.Context, blobID string) (*blobclient.GetResult, error)
}

// uploadTask uploads one blob on a pool worker and sends the outcome to
// results.
type uploadTask struct {
	ctx      context.Context
	number   int
	blob     blob.Blob
	client   BlobClient
	throttle ratelimit.Throttle
	console  *console.Console
	metrics  monitor.MetricHandle
	results  chan<- UploadResult
}

func (t *uploadTask) Execute() {
	res := t.upload()
	// The payload is not needed once the request is done.
	t.blob = blob.Blob{}
	t.results <- res
}

func (t *uploadTask) upload() UploadResult {
	res := UploadResult{Number: t.number, SizeKB: t.blob.SizeKB()}
	prefix := fmt.Sprintf("[UPLOAD #%d]", t.number)

	if err := t.throttle.Wait(t.ctx, 1); err != nil {
		return t.noResponse(res, prefix, err)
	}
	put, err := t.client.Put(t.ctx, t.blob.Data)
	if err != nil {
		return t.noResponse(res, prefix, err)
	}
	res.Latency = put.Latency
	t.metrics.UploadedBytes(t.ctx, int64(len(t.blob.Data)))

	lines := make([]console.Line, 0, 4)
	blobID, status, err := blobclient.ParseUploadResponse(put.Body)
	switch {
	case errors.Is(err, blobclient.ErrMalformedResponse):
		res.Outcome, res.Err = ParseError, err
		lines = append(lines, console.Linef(console.Failure, "%s Failed to parse JSON response: %s", prefix,
			strings.TrimPrefix(err.Error(), blobclient.ErrMalformedResponse.Error()+": ")))
	case err != nil:
		res.Outcome, res.Err = Unexpected, err
		lines = append(lines, console.Linef(console.Failure, "%s Unexpected response format: %s%s", prefix,
			strings.TrimSpace(string(put.Body)), statusSuffix(put.StatusCode)))
	case status == blobclient.AlreadyCertified:
		res.Outcome, res.BlobID = AlreadyCertified, blobID
		lines = append(lines, console.Linef(console.Warning, "%s Blob already exists with id: %s", prefix, blobID))
	default:
		res.Outcome, res.BlobID = Created, blobID
		lines = append(lines, console.Linef(console.Success, "%s Uploaded successfully. Blob created with id: %s", prefix, blobID))
	}
	if res.Err != nil {
		logger.Debugf("Upload #%d: %v (status %d)", t.number, res.Err, put.StatusCode)
	}

	lines = append(lines,
		console.Linef(console.Timing, "%s Response time: %.3f seconds", prefix, res.Latency.Seconds()),
		console.Linef(console.Timing, "%s Blob size: %.2f kB", prefix, res.SizeKB),
		console.Blank)
	t.console.Print(lines...)
	t.metrics.UploadLatency(t.ctx, res.Latency.Seconds(), res.Outcome.String())
	return res
}

// noResponse reports an upload that never got an answer from the publisher.
func (t *uploadTask) noResponse(res UploadResult, prefix string, err error) UploadResult {
	res.Outcome, res.Err = NetworkError, err
	logger.Debugf("Upload #%d failed: %v", t.number, err)
	t.console.Printf(console.Failure, "%s Error during upload: %v", prefix, err)
	return res
}

func statusSuffix(code int) string {
	if code >= 200 && code <= 299 {
		return ""
	}
	return fmt.Sprintf(" (HTTP %d)", code)
}
