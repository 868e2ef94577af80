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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rubynodes/blobstress/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse runs the root command with args and returns the config handed to the
// run function.
func parse(t *testing.T, args ...string) (cfg.Config, error) {
	t.Helper()
	var actual cfg.Config
	cmd, err := NewRootCmd(func(c cfg.Config) error {
		actual = c
		return nil
	})
	require.NoError(t, err)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err = cmd.Execute()
	return actual, err
}

func TestDefaults(t *testing.T) {
	c, err := parse(t)

	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultPublisherURL, c.Publisher.Url)
	assert.Equal(t, cfg.DefaultAggregatorURL, c.Aggregator.Url)
	assert.Equal(t, int64(5), c.Blobs.Count)
	assert.Equal(t, int64(900), c.Blobs.MinSizeKb)
	assert.Equal(t, int64(1000), c.Blobs.MaxSizeKb)
	assert.Equal(t, int64(8), c.Concurrency.MaxThreads)
	assert.Zero(t, c.Concurrency.UploadRateLimit)
	assert.Equal(t, cfg.HTTP1, c.Connection.ClientProtocol)
	assert.Zero(t, c.Connection.HttpClientTimeout)
	assert.True(t, c.Export.Enabled)
	assert.Equal(t, "results.json", filepath.Base(string(c.Export.FilePath)))
	assert.True(t, filepath.IsAbs(string(c.Export.FilePath)))
	assert.Equal(t, cfg.InfoLogSeverity, c.Logging.Severity)
	assert.Equal(t, cfg.TextLogFormat, c.Logging.Format)
	assert.Zero(t, c.Metrics.PrometheusPort)
	assert.False(t, c.Console.NoColor)
}

func TestValidConfigFile(t *testing.T) {
	c, err := parse(t, "--config-file=testdata/valid_config.yml")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:31415", c.Publisher.Url)
	assert.Equal(t, "http://localhost:31416", c.Aggregator.Url)
	assert.Equal(t, int64(12), c.Blobs.Count)
	assert.Equal(t, int64(10), c.Blobs.MinSizeKb)
	assert.Equal(t, int64(20), c.Blobs.MaxSizeKb)
	assert.Equal(t, int64(99), c.Blobs.Seed)
	assert.Equal(t, int64(3), c.Concurrency.MaxThreads)
	assert.Equal(t, 2.5, c.Concurrency.UploadRateLimit)
	assert.Equal(t, cfg.HTTP2, c.Connection.ClientProtocol)
	assert.Equal(t, 45*time.Second, c.Connection.HttpClientTimeout)
	assert.Equal(t, filepath.Join("out", "run.json"), lastTwo(string(c.Export.FilePath)))
	assert.Equal(t, cfg.DebugLogSeverity, c.Logging.Severity)
	assert.Equal(t, cfg.JSONLogFormat, c.Logging.Format)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	c, err := parse(t, "--config-file=testdata/valid_config.yml", "--blobs=2", "-t", "1")

	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Blobs.Count)
	assert.Equal(t, int64(1), c.Concurrency.MaxThreads)
	assert.Equal(t, int64(10), c.Blobs.MinSizeKb)
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("BLOBSTRESS_BLOBS_COUNT", "7")
	t.Setenv("BLOBSTRESS_CONCURRENCY_MAX_THREADS", "4")

	c, err := parse(t)

	require.NoError(t, err)
	assert.Equal(t, int64(7), c.Blobs.Count)
	assert.Equal(t, int64(4), c.Concurrency.MaxThreads)
}

func TestFlagsOverrideEnvironmentVariables(t *testing.T) {
	t.Setenv("BLOBSTRESS_BLOBS_COUNT", "7")

	c, err := parse(t, "-n", "3")

	require.NoError(t, err)
	assert.Equal(t, int64(3), c.Blobs.Count)
}

func TestInvalidConfigFile(t *testing.T) {
	_, err := parse(t, "--config-file=testdata/invalid_config.yml")

	if assert.Error(t, err) {
		expectedErr := &mapstructure.Error{}
		assert.ErrorAs(t, err, &expectedErr)
	}
}

func TestConfigFileFailsValidation(t *testing.T) {
	_, err := parse(t, "--config-file=testdata/invalid_bounds_config.yml")

	assert.ErrorContains(t, err, cfg.BlobSizeBoundsInvalidError)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := parse(t, "--config-file="+filepath.Join(t.TempDir(), "absent.yml"))

	assert.ErrorContains(t, err, "error while reading the config file")
}

func TestPositionalArgsRejected(t *testing.T) {
	_, err := parse(t, "extra")

	assert.Error(t, err)
}

func TestRunErrorIsReturned(t *testing.T) {
	cmd, err := NewRootCmd(func(cfg.Config) error { return os.ErrPermission })
	require.NoError(t, err)
	cmd.SetArgs([]string{})

	assert.ErrorIs(t, cmd.Execute(), os.ErrPermission)
}

func lastTwo(p string) string {
	return filepath.Join(filepath.Base(filepath.Dir(p)), filepath.Base(p))
}
