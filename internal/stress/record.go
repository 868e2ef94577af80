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
	"fmt"
	"time"
)

// UploadOutcome classifies how an upload ended.
type UploadOutcome int

const (
	Created UploadOutcome = iota
	AlreadyCertified
	Unexpected
	ParseError
	NetworkError
)

func (o UploadOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case AlreadyCertified:
		return "already_certified"
	case Unexpected:
		return "unexpected"
	case ParseError:
		return "parse_error"
	case NetworkError:
		return "network_error"
	default:
		return fmt.Sprintf("UploadOutcome(%d)", int(o))
	}
}

// UploadResult is what an upload task hands back to the coordinator.
type UploadResult struct {
	// Number is the 1-based sequence number of the blob within the run.
	Number int
	// BlobID is empty when the upload produced no usable identifier.
	BlobID string
	// Latency is zero when no response was received.
	Latency time.Duration
	SizeKB  float64
	Outcome UploadOutcome
	Err     error
}

// Succeeded reports whether the blob can be downloaded.
func (r *UploadResult) Succeeded() bool {
	return r.BlobID != ""
}

// Attempt is one download of a blob. Latency is meaningful only when Err is
// nil.
type Attempt struct {
	Latency time.Duration
	Err     error
}

func (a Attempt) Failed() bool {
	return a.Err != nil
}

// DownloadRecord holds the measurements of a blob whose upload succeeded.
type DownloadRecord struct {
	Number        int
	BlobID        string
	UploadLatency time.Duration
	SizeKB        float64
	First         Attempt
	Cached        Attempt
}
