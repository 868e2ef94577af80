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

import (
	"fmt"
	"net/url"
)

const (
	BlobCountInvalidValueError       = "the value of count for blobs must be atleast 1"
	BlobSizeNegativeValueError       = "the blob size bounds can't be negative"
	BlobSizeBoundsInvalidError       = "min-size-kb for blobs can't be greater than max-size-kb"
	MaxThreadsInvalidValueError      = "the value of max-threads for concurrency must be atleast 1"
	UploadRateLimitInvalidValueError = "the value of upload-rate-limit for concurrency can't be negative"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLoggingConfig(config *LoggingConfig) error {
	if config.Severity.Rank() < 0 {
		return fmt.Errorf("unknown log severity: %q", config.Severity)
	}
	if config.Format != TextLogFormat && config.Format != JSONLogFormat {
		return fmt.Errorf("unknown log format: %q", config.Format)
	}
	return isValidLogRotateConfig(&config.LogRotate)
}

// isValidEndpointURL accepts only absolute http(s) URLs with a host.
func isValidEndpointURL(u string) error {
	parsed, err := url.Parse(u)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in %q", parsed.Scheme, u)
	}
	if parsed.Host == "" {
		return fmt.Errorf("missing host in %q", u)
	}
	return nil
}

func isValidBlobsConfig(c *BlobsConfig) error {
	if c.Count < 1 {
		return fmt.Errorf(BlobCountInvalidValueError)
	}
	if c.MinSizeKb < 0 || c.MaxSizeKb < 0 {
		return fmt.Errorf(BlobSizeNegativeValueError)
	}
	if c.MinSizeKb > c.MaxSizeKb {
		return fmt.Errorf(BlobSizeBoundsInvalidError)
	}
	return nil
}

func isValidConcurrencyConfig(c *ConcurrencyConfig) error {
	if c.MaxThreads < 1 {
		return fmt.Errorf(MaxThreadsInvalidValueError)
	}
	if c.UploadRateLimit < 0 {
		return fmt.Errorf(UploadRateLimitInvalidValueError)
	}
	return nil
}

func isValidConnectionConfig(c *ConnectionConfig) error {
	if c.ClientProtocol != HTTP1 && c.ClientProtocol != HTTP2 {
		return fmt.Errorf("unknown client-protocol: %q", c.ClientProtocol)
	}
	if c.HttpClientTimeout < 0 {
		return fmt.Errorf("http-client-timeout can't be negative")
	}
	if c.MaxConnsPerHost < 0 {
		return fmt.Errorf("max-conns-per-host can't be negative")
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidEndpointURL(config.Publisher.Url); err != nil {
		return fmt.Errorf("error parsing publisher url config: %w", err)
	}

	if err = isValidEndpointURL(config.Aggregator.Url); err != nil {
		return fmt.Errorf("error parsing aggregator url config: %w", err)
	}

	if err = isValidBlobsConfig(&config.Blobs); err != nil {
		return fmt.Errorf("error parsing blobs config: %w", err)
	}

	if err = isValidConcurrencyConfig(&config.Concurrency); err != nil {
		return fmt.Errorf("error parsing concurrency config: %w", err)
	}

	if err = isValidConnectionConfig(&config.Connection); err != nil {
		return fmt.Errorf("error parsing connection config: %w", err)
	}

	if err = isValidLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}

	if config.Export.Enabled && config.Export.FilePath == "" {
		return fmt.Errorf("error parsing export config: file-path can't be empty when export is enabled")
	}

	if config.Metrics.PrometheusPort < 0 {
		return fmt.Errorf("error parsing metrics config: prometheus-port can't be negative")
	}

	return nil
}
