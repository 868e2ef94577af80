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
	"testing"

	"github.com/rubynodes/blobstress/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestSetupPrometheus_Disabled(t *testing.T) {
	opts, shutdownFn := setupPrometheus(0)

	assert.Empty(t, opts)
	assert.Nil(t, shutdownFn)
}

func TestSetupOTelMetricExporters_NoReader(t *testing.T) {
	c := &cfg.Config{}

	shutdownFn := SetupOTelMetricExporters(context.Background(), c, "1.2.3")

	require.NotNil(t, shutdownFn)
	assert.NoError(t, shutdownFn(context.Background()))
}

func TestGetResource(t *testing.T) {
	res, err := getResource(context.Background(), "1.2.3")

	require.NoError(t, err)
	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, serviceName, name.AsString())
	version, ok := res.Set().Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", version.AsString())
}
