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

// Package blobclient talks to the publisher and aggregator of a blob store.
//
// Upload:   PUT <publisher>/v1/blobs          (raw bytes, application/octet-stream)
// Download: GET <aggregator>/v1/blobs/<blobId>
package blobclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jacobsa/timeutil"
	"github.com/rubynodes/blobstress/cfg"
)

const blobsPath = "/v1/blobs"

type ClientConfig struct {
	PublisherURL      string
	AggregatorURL     string
	ClientProtocol    cfg.Protocol
	HttpClientTimeout time.Duration
	MaxConnsPerHost   int
	UserAgent         string
	// Clock used for latency measurements. Defaults to the real clock.
	Clock timeutil.Clock
	// Transport overrides the transport built from ClientProtocol.
	Transport http.RoundTripper
}

type Client struct {
	publisherURL  string
	aggregatorURL string
	userAgent     string
	httpClient    *http.Client
	clock         timeutil.Clock
}

// PutResult is a completed upload request. Latency spans sending the payload
// and reading the whole response body.
type PutResult struct {
	StatusCode int
	Body       []byte
	Latency    time.Duration
}

// GetResult is a completed download request. Latency spans the request and
// draining the whole response body.
type GetResult struct {
	StatusCode int
	Bytes      int64
	Latency    time.Duration
}

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func NewClient(c ClientConfig) (*Client, error) {
	transport := c.Transport
	if transport == nil {
		var err error
		if transport, err = newTransport(c.ClientProtocol, c.MaxConnsPerHost); err != nil {
			return nil, err
		}
	}
	clock := c.Clock
	if clock == nil {
		clock = timeutil.RealClock()
	}
	return &Client{
		publisherURL:  c.PublisherURL,
		aggregatorURL: c.AggregatorURL,
		userAgent:     c.UserAgent,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   c.HttpClientTimeout,
		},
		clock: clock,
	}, nil
}

// Put uploads data to the publisher. A non-nil error means no response was
// received; the status code is not checked.
func (c *Client) Put(ctx context.Context, data []byte) (*PutResult, error) {
	target := c.publisherURL + blobsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build PUT request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	c.setUserAgent(req)

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read PUT %s response: %w", target, err)
	}

	return &PutResult{
		StatusCode: resp.StatusCode,
		Body:       body,
		Latency:    c.clock.Now().Sub(start),
	}, nil
}

// Get downloads the blob with the given id from the aggregator and discards
// its content. A response with a non-2xx status is returned together with a
// *StatusError.
func (c *Client) Get(ctx context.Context, blobID string) (*GetResult, error) {
	target := c.aggregatorURL + blobsPath + "/" + url.PathEscape(blobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build GET request: %w", err)
	}
	c.setUserAgent(req)

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read GET %s response: %w", target, err)
	}

	res := &GetResult{
		StatusCode: resp.StatusCode,
		Bytes:      n,
		Latency:    c.clock.Now().Sub(start),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, &StatusError{Method: http.MethodGet, URL: target, StatusCode: resp.StatusCode}
	}
	return res, nil
}

func (c *Client) setUserAgent(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
