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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rubynodes/blobstress/cfg"
	"github.com/rubynodes/blobstress/internal/blob"
	"github.com/rubynodes/blobstress/internal/blobclient"
	"github.com/rubynodes/blobstress/internal/console"
	"github.com/rubynodes/blobstress/internal/logger"
	"github.com/rubynodes/blobstress/internal/monitor"
	"github.com/rubynodes/blobstress/internal/ratelimit"
	"github.com/rubynodes/blobstress/internal/report"
	"github.com/rubynodes/blobstress/internal/stress"
	"gopkg.in/yaml.v3"
)

const shutdownTimeout = 5 * time.Second

var errAllUploadsFailed = errors.New("every upload failed")

// stdout is where the console output goes; replaced in tests.
var stdout io.Writer = os.Stdout

func runStressTest(c cfg.Config) (err error) {
	if err = logger.InitLogFile(c.Logging); err != nil {
		return fmt.Errorf("init log file: %w", err)
	}
	defer logger.Close()
	logger.WithAttrs("run_id", uuid.NewString())
	logConfig(&c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricHandle, shutdownFn := setupMetrics(ctx, &c)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := shutdownFn(shutdownCtx); shutdownErr != nil {
			logger.Warnf("Error while shutting down metrics: %v", shutdownErr)
		}
	}()

	client, err := blobclient.NewClient(blobclient.ClientConfig{
		PublisherURL:      c.Publisher.Url,
		AggregatorURL:     c.Aggregator.Url,
		ClientProtocol:    c.Connection.ClientProtocol,
		HttpClientTimeout: c.Connection.HttpClientTimeout,
		MaxConnsPerHost:   int(c.Connection.MaxConnsPerHost),
		UserAgent:         "blobstress/" + shortVersion(),
	})
	if err != nil {
		return fmt.Errorf("create blob client: %w", err)
	}

	seed := uint64(c.Blobs.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Infof("Blob generator seed: %d", seed)
	gen, err := blob.NewSeededGenerator(int(c.Blobs.MinSizeKb), int(c.Blobs.MaxSizeKb), seed)
	if err != nil {
		return fmt.Errorf("create blob generator: %w", err)
	}

	con := console.New(stdout, colorEnabled(c.Console.NoColor))
	defer con.Close()

	runner, err := stress.NewRunner(stress.RunnerConfig{
		Client:     client,
		Console:    con,
		Generator:  gen,
		BlobCount:  int(c.Blobs.Count),
		MaxThreads: int(c.Concurrency.MaxThreads),
		Throttle:   ratelimit.NewThrottle(c.Concurrency.UploadRateLimit, 1),
		Metrics:    metricHandle,
	})
	if err != nil {
		return err
	}

	records, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	report.Print(con, records)

	if c.Export.Enabled {
		path := string(c.Export.FilePath)
		if err = report.Export(path, records); err != nil {
			logger.Errorf("Failed to export summary results: %v", err)
			con.Print(console.Blank, console.Linef(console.Failure, "Failed to export summary results: %v", err))
			return err
		}
		con.Print(console.Blank, console.Linef(console.Plain, "Summary results exported to %s", path))
	}

	if len(records) == 0 {
		return errAllUploadsFailed
	}
	return nil
}

func setupMetrics(ctx context.Context, c *cfg.Config) (monitor.MetricHandle, monitor.ShutdownFn) {
	if c.Metrics.PrometheusPort <= 0 {
		return monitor.NewNoopMetrics(), monitor.JoinShutdownFunc()
	}
	shutdownFn := monitor.SetupOTelMetricExporters(ctx, c, getVersion())
	metricHandle, err := monitor.NewOTelMetrics()
	if err != nil {
		logger.Errorf("Failed to create metric handle, metrics are disabled: %v", err)
		return monitor.NewNoopMetrics(), shutdownFn
	}
	return metricHandle, shutdownFn
}

// colorEnabled reports whether console output should carry ANSI colours.
func colorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func logConfig(c *cfg.Config) {
	out, err := yaml.Marshal(c)
	if err != nil {
		logger.Warnf("Failed to marshal config: %v", err)
		return
	}
	logger.Info("blobstress config", "config", string(out))
}
