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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rubynodes/blobstress/internal/blob"
	"github.com/rubynodes/blobstress/internal/blobclient"
	"github.com/rubynodes/blobstress/internal/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, client BlobClient, metrics *fakeMetrics, count, threads int) (*Runner, *console.Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := console.New(&out, false)
	gen, err := blob.NewSeededGenerator(1, 2, 7)
	require.NoError(t, err)
	r, err := NewRunner(RunnerConfig{
		Client:     client,
		Console:    c,
		Generator:  gen,
		BlobCount:  count,
		MaxThreads: threads,
		Metrics:    metrics,
	})
	require.NoError(t, err)
	return r, c, &out
}

func TestNewRunner_Validation(t *testing.T) {
	gen, err := blob.NewSeededGenerator(1, 1, 1)
	require.NoError(t, err)
	c := console.New(&bytes.Buffer{}, false)
	defer c.Close()
	client := newFakeClient()

	testCases := []struct {
		name string
		cfg  RunnerConfig
	}{
		{"missing_client", RunnerConfig{Console: c, Generator: gen, BlobCount: 1, MaxThreads: 1}},
		{"missing_console", RunnerConfig{Client: client, Generator: gen, BlobCount: 1, MaxThreads: 1}},
		{"missing_generator", RunnerConfig{Client: client, Console: c, BlobCount: 1, MaxThreads: 1}},
		{"negative_count", RunnerConfig{Client: client, Console: c, Generator: gen, BlobCount: -1, MaxThreads: 1}},
		{"zero_threads", RunnerConfig{Client: client, Console: c, Generator: gen, BlobCount: 1, MaxThreads: 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRunner(tc.cfg)

			assert.Error(t, err)
		})
	}
}

func TestRun_AllSucceed(t *testing.T) {
	const count = 6
	var puts []putReply
	for i := 1; i <= count; i++ {
		puts = append(puts, created(fmt.Sprintf("id-%d", i), time.Duration(i)*time.Millisecond))
	}
	client := newFakeClient(puts...)
	metrics := &fakeMetrics{}
	r, c, out := newTestRunner(t, client, metrics, count, 3)

	records, err := r.Run(context.Background())
	c.Close()

	require.NoError(t, err)
	require.Len(t, records, count)
	seen := make(map[string]bool)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.Number)
		assert.False(t, seen[rec.BlobID], "duplicate blob id %s", rec.BlobID)
		seen[rec.BlobID] = true
		assert.Equal(t, 2, client.gets(rec.BlobID))
		assert.False(t, rec.First.Failed())
		assert.False(t, rec.Cached.Failed())
		assert.GreaterOrEqual(t, rec.SizeKB, 1.0)
		assert.LessOrEqual(t, rec.SizeKB, 2.0)
	}
	assert.Len(t, metrics.uploads, count)
	assert.Len(t, metrics.downloads, 2*count)
	assert.True(t, strings.HasPrefix(out.String(), "Starting stress test...\n"))
}

func TestRun_FailedUploadSkipsDownloads(t *testing.T) {
	client := newFakeClient(
		created("first", time.Millisecond),
		putReply{err: errors.New("connection reset")},
		putReply{status: 200, body: `{"foo":"bar"}`, latency: time.Millisecond},
		putReply{status: 200, body: "not json", latency: time.Millisecond},
		putReply{status: 200, body: `{"alreadyCertified":{"blobId":"last"}}`, latency: time.Millisecond},
	)
	// One worker keeps the uploads in blob number order.
	r, c, out := newTestRunner(t, client, &fakeMetrics{}, 5, 1)

	records, err := r.Run(context.Background())
	c.Close()

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Number)
	assert.Equal(t, "first", records[0].BlobID)
	assert.Equal(t, 5, records[1].Number)
	assert.Equal(t, "last", records[1].BlobID)
	assert.Equal(t, 4, client.totalGets())
	for _, n := range []int{2, 3, 4} {
		assert.Contains(t, out.String(), fmt.Sprintf("[RESULT #%d] Skipping downloads due to upload error.\n", n))
	}
	assert.NotContains(t, out.String(), "[RESULT #1]")
	assert.NotContains(t, out.String(), "[DOWNLOAD 2 ")
}

func TestRun_DownloadLines(t *testing.T) {
	client := newFakeClient(created("abc", time.Millisecond))
	client.getReplies["abc"] = []getReply{{latency: 300 * time.Millisecond}, {latency: 40 * time.Millisecond}}
	r, c, out := newTestRunner(t, client, &fakeMetrics{}, 1, 1)

	records, err := r.Run(context.Background())
	c.Close()

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 300*time.Millisecond, records[0].First.Latency)
	assert.Equal(t, 40*time.Millisecond, records[0].Cached.Latency)
	assert.Contains(t, out.String(),
		"[DOWNLOAD 1 Attempt 1] Blob ID - abc - Response time: 0.300 seconds\n"+
			"[DOWNLOAD 1 Attempt 2] Blob ID - abc - Response time: 0.040 seconds\n"+
			"\n")
}

func TestRun_FailedDownloadKeepsRecord(t *testing.T) {
	client := newFakeClient(created("abc", time.Millisecond))
	notFound := &blobclient.StatusError{Method: "GET", URL: "http://agg/v1/blobs/abc", StatusCode: 404}
	client.getReplies["abc"] = []getReply{{latency: 5 * time.Millisecond}, {err: notFound}}
	metrics := &fakeMetrics{}
	r, c, out := newTestRunner(t, client, metrics, 1, 1)

	records, err := r.Run(context.Background())
	c.Close()

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].First.Failed())
	assert.True(t, records[0].Cached.Failed())
	assert.ErrorAs(t, records[0].Cached.Err, &notFound)
	assert.Contains(t, out.String(), "[DOWNLOAD 1 Attempt 2] Error during download: GET http://agg/v1/blobs/abc: unexpected status 404 Not Found\n")
	assert.Equal(t, []downloadSample{{0.005, 1}}, metrics.downloads)
}

func TestRun_CancelledContextDrainsEveryUpload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := newFakeClient(created("a", time.Millisecond), created("b", time.Millisecond))
	r, c, out := newTestRunner(t, client, &fakeMetrics{}, 2, 2)

	records, err := r.Run(ctx)
	c.Close()

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 2, strings.Count(out.String(), "Skipping downloads due to upload error."))
}

func TestRun_NoBlobs(t *testing.T) {
	r, c, _ := newTestRunner(t, newFakeClient(), &fakeMetrics{}, 0, 4)

	records, err := r.Run(context.Background())
	c.Close()

	require.NoError(t, err)
	assert.Empty(t, records)
}
