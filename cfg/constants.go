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

const (
	DefaultPublisherURL  = "https://walrus-publisher.rubynodes.io"
	DefaultAggregatorURL = "https://walrus-aggregator.rubynodes.io"
	DefaultBlobMinSizeKb = 900
	DefaultBlobMaxSizeKb = 1000
	DefaultBlobCount     = 5
	DefaultMaxThreads    = 8
	DefaultResultsFile   = "results.json"

	// EnvPrefix is prepended to upper-cased config keys when they are looked
	// up in the environment, e.g. BLOBSTRESS_BLOBS_COUNT.
	EnvPrefix = "BLOBSTRESS"
)

// Config keys, as used in the YAML config file and in viper.
const (
	AggregatorURLConfigKey            = "aggregator.url"
	BlobCountConfigKey                = "blobs.count"
	BlobMaxSizeKbConfigKey            = "blobs.max-size-kb"
	BlobMinSizeKbConfigKey            = "blobs.min-size-kb"
	BlobSeedConfigKey                 = "blobs.seed"
	ClientProtocolConfigKey           = "connection.client-protocol"
	ExportEnabledConfigKey            = "export.enabled"
	ExportFilePathConfigKey           = "export.file-path"
	HttpClientTimeoutConfigKey        = "connection.http-client-timeout"
	LogFilePathConfigKey              = "logging.file-path"
	LogFormatConfigKey                = "logging.format"
	LogRotateBackupFileCountConfigKey = "logging.log-rotate.backup-file-count"
	LogRotateCompressConfigKey        = "logging.log-rotate.compress"
	LogRotateMaxFileSizeMbConfigKey   = "logging.log-rotate.max-file-size-mb"
	LogSeverityConfigKey              = "logging.severity"
	MaxConnsPerHostConfigKey          = "connection.max-conns-per-host"
	MaxThreadsConfigKey               = "concurrency.max-threads"
	NoColorConfigKey                  = "console.no-color"
	PrometheusPortConfigKey           = "metrics.prometheus-port"
	PublisherURLConfigKey             = "publisher.url"
	UploadRateLimitConfigKey          = "concurrency.upload-rate-limit"
)
