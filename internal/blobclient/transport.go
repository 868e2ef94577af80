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

package blobclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/rubynodes/blobstress/cfg"
	"golang.org/x/net/http2"
)

func newTransport(protocol cfg.Protocol, maxConnsPerHost int) (http.RoundTripper, error) {
	switch protocol {
	case cfg.HTTP1, "":
		return newTransportHTTP1(maxConnsPerHost), nil
	case cfg.HTTP2:
		return newTransportHTTP2(maxConnsPerHost)
	default:
		return nil, fmt.Errorf("unknown transport type: %q", protocol)
	}
}

func baseTransport(maxConnsPerHost int) *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxConnsPerHost:       maxConnsPerHost,
		MaxIdleConnsPerHost:   maxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

func newTransportHTTP1(maxConnsPerHost int) *http.Transport {
	t := baseTransport(maxConnsPerHost)
	// This disables HTTP/2 in the transport.
	t.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
	return t
}

func newTransportHTTP2(maxConnsPerHost int) (*http.Transport, error) {
	t := baseTransport(maxConnsPerHost)
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("configure http2 transport: %w", err)
	}
	return t, nil
}
