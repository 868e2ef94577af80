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

// Package report summarizes the records of a stress test run on the console
// and in a JSON file.
package report

import (
	"fmt"
	"time"

	"github.com/rubynodes/blobstress/internal/console"
	"github.com/rubynodes/blobstress/internal/stress"
)

// Print writes the per-blob summary followed by the cached download range
// and the download percentiles. records must be sorted by blob number.
func Print(c *console.Console, records []stress.DownloadRecord) {
	lines := []console.Line{
		console.Blank,
		console.Linef(console.Plain, "=== Stress Test Summary ==="),
	}
	for _, r := range records {
		lines = append(lines,
			console.Linef(console.Plain, "Blob #%d - ID: %s", r.Number, r.BlobID),
			console.Linef(console.Timing, "   Upload time:         %.3f seconds", r.UploadLatency.Seconds()),
			console.Linef(console.Warning, "   Blob size:           %.2f kB", r.SizeKB),
			console.Linef(console.ColdRead, "   Download (first):    %s", formatAttempt(r.First)),
			console.Linef(console.WarmRead, "   Download (cached):   %s", formatAttempt(r.Cached)),
		)
	}

	if shortest, longest, ok := CachedRange(records); ok {
		lines = append(lines,
			console.Blank,
			console.Linef(console.Plain, "Overall Download Times From Cache:"),
			console.Linef(console.Success, "   Shortest: %.3f seconds", shortest.Seconds()),
			console.Linef(console.Failure, "   Longest:  %.3f seconds", longest.Seconds()),
		)
	}

	first, firstOK := computePercentiles(latencies(records, func(r stress.DownloadRecord) stress.Attempt { return r.First }))
	cached, cachedOK := computePercentiles(latencies(records, func(r stress.DownloadRecord) stress.Attempt { return r.Cached }))
	if firstOK || cachedOK {
		lines = append(lines, console.Blank, console.Linef(console.Plain, "Download Time Percentiles:"))
		if firstOK {
			lines = append(lines, console.Linef(console.ColdRead, "   First:   %s", formatPercentiles(first)))
		}
		if cachedOK {
			lines = append(lines, console.Linef(console.WarmRead, "   Cached:  %s", formatPercentiles(cached)))
		}
	}

	c.Print(lines...)
}

// CachedRange returns the shortest and longest successful cached download
// latency. ok is false when no cached download succeeded.
func CachedRange(records []stress.DownloadRecord) (shortest, longest time.Duration, ok bool) {
	for _, r := range records {
		if r.Cached.Failed() {
			continue
		}
		if !ok || r.Cached.Latency < shortest {
			shortest = r.Cached.Latency
		}
		if !ok || r.Cached.Latency > longest {
			longest = r.Cached.Latency
		}
		ok = true
	}
	return
}

func latencies(records []stress.DownloadRecord, pick func(stress.DownloadRecord) stress.Attempt) []time.Duration {
	var vals []time.Duration
	for _, r := range records {
		if a := pick(r); !a.Failed() {
			vals = append(vals, a.Latency)
		}
	}
	return vals
}

func formatAttempt(a stress.Attempt) string {
	if a.Failed() {
		return "failed"
	}
	return fmt.Sprintf("%.3f seconds", a.Latency.Seconds())
}

func formatPercentiles(p Percentiles) string {
	return fmt.Sprintf("p50 %.3f  p90 %.3f  p99 %.3f seconds", p.P50.Seconds(), p.P90.Seconds(), p.P99.Seconds())
}
