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

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rubynodes/blobstress/internal/logger"
	"github.com/rubynodes/blobstress/internal/stress"
)

// exportedRecord is the JSON form of a stress.DownloadRecord. Times are in
// seconds; a failed download is null.
type exportedRecord struct {
	BlobNumber         int      `json:"blob_number"`
	BlobID             string   `json:"blob_id"`
	UploadTime         float64  `json:"upload_time"`
	BlobSizeKB         float64  `json:"blob_size_kb"`
	DownloadTimeFirst  *float64 `json:"download_time_first"`
	DownloadTimeCached *float64 `json:"download_time_cached"`
}

func attemptSeconds(a stress.Attempt) *float64 {
	if a.Failed() {
		return nil
	}
	secs := a.Latency.Seconds()
	return &secs
}

// Export writes records to path as an indented JSON array, creating the
// parent directory if needed. An empty run is written as [].
func Export(path string, records []stress.DownloadRecord) error {
	out := make([]exportedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, exportedRecord{
			BlobNumber:         r.Number,
			BlobID:             r.BlobID,
			UploadTime:         r.UploadLatency.Seconds(),
			BlobSizeKB:         r.SizeKB,
			DownloadTimeFirst:  attemptSeconds(r.First),
			DownloadTimeCached: attemptSeconds(r.Cached),
		})
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating results directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	logger.Infof("Exported %d records to %s", len(records), path)
	return nil
}
