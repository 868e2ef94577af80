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

// Package stress runs a blob store stress test: concurrent uploads, each
// followed by two sequential downloads of the uploaded blob.
package stress

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rubynodes/blobstress/internal/blob"
	"github.com/rubynodes/blobstress/internal/console"
	"github.com/rubynodes/blobstress/internal/logger"
	"github.com/rubynodes/blobstress/internal/monitor"
	"github.com/rubynodes/blobstress/internal/ratelimit"
	"github.com/rubynodes/blobstress/internal/workerpool"
)

type RunnerConfig struct {
	Client    BlobClient
	Console   *console.Console
	Generator *blob.Generator
	// BlobCount blobs are uploaded by MaxThreads concurrent workers.
	BlobCount  int
	MaxThreads int
	// Optional. Defaults to no rate limit.
	Throttle ratelimit.Throttle
	// Optional. Defaults to no metrics.
	Metrics monitor.MetricHandle
}

type Runner struct {
	client     BlobClient
	console    *console.Console
	generator  *blob.Generator
	blobCount  int
	maxThreads int
	throttle   ratelimit.Throttle
	metrics    monitor.MetricHandle
}

func NewRunner(c RunnerConfig) (*Runner, error) {
	if c.Client == nil || c.Console == nil || c.Generator == nil {
		return nil, fmt.Errorf("stress: client, console and generator are required")
	}
	if c.BlobCount < 0 {
		return nil, fmt.Errorf("stress: negative blob count %d", c.BlobCount)
	}
	if c.MaxThreads < 1 {
		return nil, fmt.Errorf("stress: max threads must be at least 1, got %d", c.MaxThreads)
	}
	r := &Runner{
		client:     c.Client,
		console:    c.Console,
		generator:  c.Generator,
		blobCount:  c.BlobCount,
		maxThreads: c.MaxThreads,
		throttle:   c.Throttle,
		metrics:    c.Metrics,
	}
	if r.throttle == nil {
		r.throttle = ratelimit.NewThrottle(0, 1)
	}
	if r.metrics == nil {
		r.metrics = monitor.NewNoopMetrics()
	}
	return r, nil
}

// Run uploads every blob, downloads each successfully uploaded blob twice and
// returns one record per successful upload, sorted by blob number.
//
// Cancelling ctx makes pending requests fail; Run still waits for every
// scheduled upload and returns the records gathered so far.
func (r *Runner) Run(ctx context.Context) ([]DownloadRecord, error) {
	// The queue holds every task, so scheduling never blocks.
	pool, err := workerpool.NewStaticWorkerPool(uint32(r.maxThreads), r.blobCount)
	if err != nil {
		return nil, fmt.Errorf("creating upload pool: %w", err)
	}
	completions := make(chan UploadResult, r.blobCount)

	r.console.Printf(console.Plain, "Starting stress test...")
	logger.Infof("Starting stress test: %d blobs, %d upload workers", r.blobCount, r.maxThreads)

	// All blobs are generated before the first upload starts.
	for i := 1; i <= r.blobCount; i++ {
		pool.Schedule(&uploadTask{
			ctx:      ctx,
			number:   i,
			blob:     r.generator.Generate(),
			client:   r.client,
			throttle: r.throttle,
			console:  r.console,
			metrics:  r.metrics,
			results:  completions,
		})
	}
	pool.Start()
	defer pool.Stop()

	records := make([]DownloadRecord, 0, r.blobCount)
	for range r.blobCount {
		res := <-completions
		if !res.Succeeded() {
			r.console.Printf(console.Failure, "[RESULT #%d] Skipping downloads due to upload error.", res.Number)
			continue
		}

		first := r.download(ctx, res.BlobID, res.Number, 1)
		cached := r.download(ctx, res.BlobID, res.Number, 2)
		r.console.Print(console.Blank)

		records = append(records, DownloadRecord{
			Number:        res.Number,
			BlobID:        res.BlobID,
			UploadLatency: res.Latency,
			SizeKB:        res.SizeKB,
			First:         first,
			Cached:        cached,
		})
	}

	slices.SortFunc(records, func(a, b DownloadRecord) int {
		return cmp.Compare(a.Number, b.Number)
	})
	logger.Infof("Stress test finished: %d of %d uploads succeeded", len(records), r.blobCount)
	return records, nil
}
