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

package monitor

import (
	"context"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "blobstress"

var (
	// outcomeKey classifies how an upload ended, e.g. created or network_error.
	outcomeKey = attribute.Key("outcome")
	// attemptKey is the download attempt, 1 for the first read and 2 for the
	// cached one.
	attemptKey = attribute.Key("attempt")

	outcomeOptionCache,
	attemptOptionCache sync.Map

	// Latencies of a few ms up to several minutes.
	latencyBucketsSecs = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}
)

// MetricHandle records the measurements of a run.
type MetricHandle interface {
	UploadLatency(ctx context.Context, secs float64, outcome string)
	DownloadLatency(ctx context.Context, secs float64, attempt int)
	UploadedBytes(ctx context.Context, inc int64)
}

func loadOrStoreAttrOption[K comparable](mp *sync.Map, key K, attrSetGenFunc func() attribute.Set) metric.MeasurementOption {
	attrSet, ok := mp.Load(key)
	if ok {
		return attrSet.(metric.MeasurementOption)
	}
	v, _ := mp.LoadOrStore(key, metric.WithAttributeSet(attrSetGenFunc()))
	return v.(metric.MeasurementOption)
}

func outcomeAttrOption(outcome string) metric.MeasurementOption {
	return loadOrStoreAttrOption(&outcomeOptionCache, outcome,
		func() attribute.Set {
			return attribute.NewSet(outcomeKey.String(outcome))
		})
}

func attemptAttrOption(attempt int) metric.MeasurementOption {
	return loadOrStoreAttrOption(&attemptOptionCache, attempt,
		func() attribute.Set {
			return attribute.NewSet(attemptKey.String(strconv.Itoa(attempt)))
		})
}

type otelMetrics struct {
	uploadLatency   metric.Float64Histogram
	downloadLatency metric.Float64Histogram
	uploadedBytes   metric.Int64Counter
}

// NewOTelMetrics creates the instruments on the global MeterProvider.
func NewOTelMetrics() (MetricHandle, error) {
	meter := otel.Meter(meterName)

	uploadLatency, err := meter.Float64Histogram("blobstress/upload_latency",
		metric.WithDescription("The latency of blob uploads, from sending the payload to reading the whole response."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBucketsSecs...))
	if err != nil {
		return nil, err
	}
	downloadLatency, err := meter.Float64Histogram("blobstress/download_latency",
		metric.WithDescription("The latency of blob downloads, including draining the response body."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBucketsSecs...))
	if err != nil {
		return nil, err
	}
	uploadedBytes, err := meter.Int64Counter("blobstress/uploaded_bytes",
		metric.WithDescription("The cumulative number of payload bytes sent to the publisher."),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		uploadLatency:   uploadLatency,
		downloadLatency: downloadLatency,
		uploadedBytes:   uploadedBytes,
	}, nil
}

func (o *otelMetrics) UploadLatency(ctx context.Context, secs float64, outcome string) {
	o.uploadLatency.Record(ctx, secs, outcomeAttrOption(outcome))
}

func (o *otelMetrics) DownloadLatency(ctx context.Context, secs float64, attempt int) {
	o.downloadLatency.Record(ctx, secs, attemptAttrOption(attempt))
}

func (o *otelMetrics) UploadedBytes(ctx context.Context, inc int64) {
	o.uploadedBytes.Add(ctx, inc)
}
