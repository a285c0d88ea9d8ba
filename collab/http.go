// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of CLAUSEFEAT.
//
//  CLAUSEFEAT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  CLAUSEFEAT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with CLAUSEFEAT.  If not, see <https://www.gnu.org/licenses/>.

package collab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/czcorpus/cnc-gokit/httpclient"
)

const (
	maxErrorBodySize = 512
)

var (
	ErrServiceUnavailable = errors.New("collaborating service unavailable")
)

// ServiceError is a non-2xx response of a collaborating service
type ServiceError struct {
	URL    string
	Status int
	Body   string
}

func (err ServiceError) Error() string {
	return fmt.Sprintf("service %s responded with status %d: %s", err.URL, err.Status, err.Body)
}

func newHTTPClient(requestTimeoutSecs, idleConnTimeoutSecs int) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = httpclient.TransportMaxIdleConns
	transport.MaxConnsPerHost = httpclient.TransportMaxConnsPerHost
	transport.MaxIdleConnsPerHost = httpclient.TransportMaxIdleConnsPerHost
	transport.IdleConnTimeout = time.Duration(idleConnTimeoutSecs) * time.Second
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout:   time.Duration(requestTimeoutSecs) * time.Second,
		Transport: transport,
	}
}

// doRequest performs the request and returns the whole response body.
// Transport failures are wrapped with ErrServiceUnavailable.
func doRequest(ctx context.Context, client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s: %w", req.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBodySize {
			body = body[:maxErrorBodySize]
		}
		return nil, ServiceError{URL: req.URL.String(), Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
