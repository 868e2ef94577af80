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
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Aggregator EndpointConfig `yaml:"aggregator"`

	Blobs BlobsConfig `yaml:"blobs"`

	Concurrency ConcurrencyConfig `yaml:"concurrency"`

	Connection ConnectionConfig `yaml:"connection"`

	Console ConsoleConfig `yaml:"console"`

	Export ExportConfig `yaml:"export"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Publisher EndpointConfig `yaml:"publisher"`
}

type EndpointConfig struct {
	Url string `yaml:"url"`
}

type BlobsConfig struct {
	Count int64 `yaml:"count"`

	MaxSizeKb int64 `yaml:"max-size-kb"`

	MinSizeKb int64 `yaml:"min-size-kb"`

	Seed int64 `yaml:"seed"`
}

type ConcurrencyConfig struct {
	MaxThreads int64 `yaml:"max-threads"`

	// Uploads started per second. Zero means unlimited.
	UploadRateLimit float64 `yaml:"upload-rate-limit"`
}

type ConnectionConfig struct {
	ClientProtocol Protocol `yaml:"client-protocol"`

	HttpClientTimeout time.Duration `yaml:"http-client-timeout"`

	MaxConnsPerHost int64 `yaml:"max-conns-per-host"`
}

type ConsoleConfig struct {
	NoColor bool `yaml:"no-color"`
}

type ExportConfig struct {
	Enabled bool `yaml:"enabled"`

	FilePath ResolvedPath `yaml:"file-path"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format LogFormat `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int64 `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int64 `yaml:"max-file-size-mb"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

// flagBinding ties a command-line flag to the viper key it populates.
type flagBinding struct {
	flag string
	key  string
}

var flagBindings = []flagBinding{
	{"aggregator-url", AggregatorURLConfigKey},
	{"blob-max-size-kb", BlobMaxSizeKbConfigKey},
	{"blob-min-size-kb", BlobMinSizeKbConfigKey},
	{"blobs", BlobCountConfigKey},
	{"client-protocol", ClientProtocolConfigKey},
	{"export-results", ExportEnabledConfigKey},
	{"http-client-timeout", HttpClientTimeoutConfigKey},
	{"log-file", LogFilePathConfigKey},
	{"log-format", LogFormatConfigKey},
	{"log-rotate-backup-file-count", LogRotateBackupFileCountConfigKey},
	{"log-rotate-compress", LogRotateCompressConfigKey},
	{"log-rotate-max-file-size-mb", LogRotateMaxFileSizeMbConfigKey},
	{"log-severity", LogSeverityConfigKey},
	{"max-conns-per-host", MaxConnsPerHostConfigKey},
	{"max-threads", MaxThreadsConfigKey},
	{"no-color", NoColorConfigKey},
	{"prometheus-port", PrometheusPortConfigKey},
	{"publisher-url", PublisherURLConfigKey},
	{"results-file", ExportFilePathConfigKey},
	{"seed", BlobSeedConfigKey},
	{"upload-rate-limit", UploadRateLimitConfigKey},
}

// BindFlags registers every blobstress flag on flagSet and binds it to its
// config key in v.
func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP("aggregator-url", "", DefaultAggregatorURL, "Base URL of the aggregator that serves blob reads.")

	flagSet.IntP("blob-max-size-kb", "", DefaultBlobMaxSizeKb, "Upper bound (inclusive) of the generated blob size, in KiB.")

	flagSet.IntP("blob-min-size-kb", "", DefaultBlobMinSizeKb, "Lower bound (inclusive) of the generated blob size, in KiB.")

	flagSet.IntP("blobs", "n", DefaultBlobCount, "Number of blobs to generate and upload.")

	flagSet.StringP("client-protocol", "", string(HTTP1), "The protocol used for talking to the publisher and aggregator. Value can be 'http1' (HTTP/1.1) or 'http2' (HTTP/2).")

	flagSet.BoolP("export-results", "", true, "Export the per-blob results as a JSON array.")

	flagSet.DurationP("http-client-timeout", "", 0, "Deadline applied to each HTTP request. 0 means no deadline.")

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are written to stderr.")

	flagSet.StringP("log-format", "", "text", "The format of the log output: text or json.")

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. 0 retains all of them.")

	flagSet.BoolP("log-rotate-compress", "", true, "Compress rotated log files with gzip.")

	flagSet.IntP("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")

	flagSet.StringP("log-severity", "", "info", "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	flagSet.IntP("max-conns-per-host", "", 0, "The max number of TCP connections allowed per server. 0 means no limit.")

	flagSet.IntP("max-threads", "t", DefaultMaxThreads, "Number of uploads allowed in flight at the same time.")

	flagSet.BoolP("no-color", "", false, "Disable coloured console output.")

	flagSet.IntP("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port. 0 disables it.")

	flagSet.StringP("publisher-url", "", DefaultPublisherURL, "Base URL of the publisher that accepts blob uploads.")

	flagSet.StringP("results-file", "", DefaultResultsFile, "Path of the JSON file the results are exported to.")

	flagSet.Int64P("seed", "", 0, "Seed for the blob generator. 0 picks a seed from the current time.")

	flagSet.Float64P("upload-rate-limit", "", 0, "Maximum number of uploads started per second. 0 means unlimited.")

	for _, b := range flagBindings {
		if err := v.BindPFlag(b.key, flagSet.Lookup(b.flag)); err != nil {
			return err
		}
	}
	return nil
}
