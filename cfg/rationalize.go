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

package cfg

import "strings"

// Rationalize updates the config fields based on the values of other fields.
func Rationalize(c *Config) error {
	c.Publisher.Url = strings.TrimRight(c.Publisher.Url, "/")
	c.Aggregator.Url = strings.TrimRight(c.Aggregator.Url, "/")
	if c.Logging.Severity == "" {
		c.Logging.Severity = InfoLogSeverity
	}
	if c.Logging.Format == "" {
		c.Logging.Format = TextLogFormat
	}
	return nil
}
