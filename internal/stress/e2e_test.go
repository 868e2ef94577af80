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

package stress_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rubynodes/blobstress/cfg"
	"github.com/rubynodes/blobstress/internal/blob"
	"github.com/rubynodes/blobstress/internal/blobclient"
	"github.com/rubynodes/blobstress/internal/console"
	"github.com/rubynodes/blobstress/internal/report"
	"github.com/rubynodes/blobstress/internal/stress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves the publisher and aggregator APIs from memory.
type fakeStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	gets  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string][]byte), gets: make(map[string]int)}
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPut && r.URL.Path == "/v1/blobs":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		id := fmt.Sprintf("blob-%d", len(s.blobs)+1)
		s.blobs[id] = data
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"newlyCreated":{"blobObject":{"id":"0xabc","blobId":%q,"size":%d},"cost":1}}`, id, len(data))
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/blobs/"):
		id := strings.TrimPrefix(r.URL.Path, "/v1/blobs/")
		s.mu.Lock()
		data, ok := s.blobs[id]
		s.gets[id]++
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func TestEndToEnd(t *testing.T) {
	store := newFakeStore()
	server := httptest.NewServer(store)
	defer server.Close()

	client, err := blobclient.NewClient(blobclient.ClientConfig{
		PublisherURL:   server.URL,
		AggregatorURL:  server.URL,
		ClientProtocol: cfg.HTTP1,
	})
	require.NoError(t, err)
	gen, err := blob.NewSeededGenerator(1, 4, 42)
	require.NoError(t, err)
	var out bytes.Buffer
	c := console.New(&out, false)
	runner, err := stress.NewRunner(stress.RunnerConfig{
		Client:     client,
		Console:    c,
		Generator:  gen,
		BlobCount:  3,
		MaxThreads: 2,
	})
	require.NoError(t, err)

	records, err := runner.Run(context.Background())
	require.NoError(t, err)
	report.Print(c, records)
	path := filepath.Join(t.TempDir(), "out", "results.json")
	require.NoError(t, report.Export(path, records))
	c.Close()

	require.Len(t, records, 3)
	store.mu.Lock()
	defer store.mu.Unlock()
	for i, r := range records {
		assert.Equal(t, i+1, r.Number)
		assert.Equal(t, 2, store.gets[r.BlobID])
		assert.Len(t, store.blobs[r.BlobID], int(r.SizeKB*blob.KiB))
	}
	assert.Contains(t, out.String(), "Overall Download Times From Cache:\n   Shortest: ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var exported []map[string]any
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 3)
	for _, e := range exported {
		for _, key := range []string{"blob_number", "blob_id", "upload_time", "blob_size_kb", "download_time_first", "download_time_cached"} {
			assert.NotNil(t, e[key], "missing %s", key)
		}
	}
}
