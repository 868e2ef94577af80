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

package blobclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse is returned when the publisher response is not a
	// JSON object.
	ErrMalformedResponse = errors.New("failed to parse JSON response")

	// ErrUnexpectedResponse is returned when the publisher response is valid
	// JSON but matches neither newlyCreated nor alreadyCertified.
	ErrUnexpectedResponse = errors.New("unexpected response format")
)

// UploadStatus tells which success variant the publisher answered with.
type UploadStatus int

const (
	NewlyCreated UploadStatus = iota + 1
	AlreadyCertified
)

func (s UploadStatus) String() string {
	switch s {
	case NewlyCreated:
		return "newly_created"
	case AlreadyCertified:
		return "already_certified"
	default:
		return "unknown"
	}
}

// Keys of the two success variants in a publisher response. Exactly one is
// expected to be present.
const (
	newlyCreatedKey     = "newlyCreated"
	alreadyCertifiedKey = "alreadyCertified"
)

// Only the identifiers are decoded; other fields vary between publisher
// versions and are ignored.
type NewlyCreatedInfo struct {
	BlobObject BlobObject `json:"blobObject"`
}

type BlobObject struct {
	BlobID string `json:"blobId"`
}

type AlreadyCertifiedInfo struct {
	BlobID string `json:"blobId"`
}

// ParseUploadResponse extracts the blob id from a publisher response body.
// A body that is not a JSON object wraps ErrMalformedResponse. A JSON object
// without a usable variant, including one whose variant has the wrong shape,
// wraps ErrUnexpectedResponse.
func ParseUploadResponse(body []byte) (blobID string, status UploadStatus, err error) {
	var fields map[string]json.RawMessage
	if err = json.Unmarshal(body, &fields); err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		return
	}

	if raw, ok := fields[newlyCreatedKey]; ok {
		var info NewlyCreatedInfo
		if json.Unmarshal(raw, &info) == nil && info.BlobObject.BlobID != "" {
			return info.BlobObject.BlobID, NewlyCreated, nil
		}
	}
	if raw, ok := fields[alreadyCertifiedKey]; ok {
		var info AlreadyCertifiedInfo
		if json.Unmarshal(raw, &info) == nil && info.BlobID != "" {
			return info.BlobID, AlreadyCertified, nil
		}
	}

	err = fmt.Errorf("%w: %s", ErrUnexpectedResponse, body)
	return
}
