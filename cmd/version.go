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

package cmd

import (
	"fmt"
	"runtime"
)

// Set with `-ldflags -X github.com/rubynodes/blobstress/cmd.blobstressVersion=1.2.3`.
// If not defined, "unknown" is used.
var blobstressVersion string

func shortVersion() string {
	if blobstressVersion == "" {
		return "unknown"
	}
	return blobstressVersion
}

func getVersion() string {
	return fmt.Sprintf("%s (Go version %s)", shortVersion(), runtime.Version())
}
