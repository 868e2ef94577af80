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
	"sync"
	"time"

	"github.com/rubynodes/blobstress/internal/blobclient"
	"github.com/rubynodes/blobstress/internal/monitor"
)

// fakeClient answers uploads in call order from putReplies and downloads
// from getReplies, keyed by blob id.
type fakeClient struct {
	mu         sync.Mutex
	putReplies []putReply
	putCalls   int
	getReplies map[string][]getReply
	getCalls   map[string]int
}

type putReply struct {
	status  int
	body    string
	latency time.Duration
	err     error
}

type getReply struct {
	latency time.Duration
	err     error
}

func newFakeClient(puts ...putReply) *fakeClient {
	return &fakeClient{
		putReplies: puts,
		getReplies: make(map[string][]getReply),
		getCalls:   make(map[string]int),
	}
}

func created(id string, latency time.Duration) putReply {
	return putReply{
		status:  200,
		body:    fmt.Sprintf(`{"newlyCreated":{"blobObject":{"id":"0x1","blobId":%q,"size":1024}}}`, id),
		latency: latency,
	}
}

func (f *fakeClient) Put(ctx context.Context, _ []byte) (*blobclient.PutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.putCalls >= len(f.putReplies) {
		return nil, errors.New("fakeClient: unexpected Put")
	}
	r := f.putReplies[f.putCalls]
	f.putCalls++
	if r.err != nil {
		return nil, r.err
	}
	return &blobclient.PutResult{StatusCode: r.status, Body: []byte(r.body), Latency: r.latency}, nil
}

func (f *fakeClient) Get(ctx context.Context, blobID string) (*blobclient.GetResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := f.getCalls[blobID]
	f.getCalls[blobID] = n + 1
	replies := f.getReplies[blobID]
	if n >= len(replies) {
		return &blobclient.GetResult{StatusCode: 200, Latency: 10 * time.Millisecond}, nil
	}
	if replies[n].err != nil {
		return nil, replies[n].err
	}
	return &blobclient.GetResult{StatusCode: 200, Latency: replies[n].latency}, nil
}

func (f *fakeClient) gets(blobID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[blobID]
}

func (f *fakeClient) totalGets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.getCalls {
		total += n
	}
	return total
}

type uploadSample struct {
	secs    float64
	outcome string
}

type downloadSample struct {
	secs    float64
	attempt int
}

type fakeMetrics struct {
	mu        sync.Mutex
	uploads   []uploadSample
	downloads []downloadSample
	bytes     int64
}

var _ monitor.MetricHandle = &fakeMetrics{}

func (m *fakeMetrics) UploadLatency(_ context.Context, secs float64, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, uploadSample{secs, outcome})
}

func (m *fakeMetrics) DownloadLatency(_ context.Context, secs float64, attempt int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads = append(m.downloads, downloadSample{secs, attempt})
}

func (m *fakeMetrics) UploadedBytes(_ context.Context, inc int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytes += inc
}
