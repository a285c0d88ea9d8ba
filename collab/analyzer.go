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
	"clausefeat/morph"
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// AnalyzerClient queries a morphological analyzer service
// (pymorphy compatible) for readings of a single word form.
// The service is expected to return a JSON array of readings
// ordered by their score.
type AnalyzerClient struct {
	conf   *AnalyzerConf
	client *http.Client
}

func (c *AnalyzerClient) Analyze(ctx context.Context, word string) ([]morph.Analysis, error) {
	req, err := http.NewRequest(http.MethodGet, c.conf.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer request: %w", err)
	}
	q := req.URL.Query()
	q.Add("word", word)
	req.URL.RawQuery = q.Encode()
	body, err := doRequest(ctx, c.client, req)
	if err != nil {
		return nil, err
	}
	var ans []morph.Analysis
	if err := sonic.Unmarshal(body, &ans); err != nil {
		return nil, fmt.Errorf("failed to decode analyzer response for `%s`: %w", word, err)
	}
	return ans, nil
}

func NewAnalyzerClient(conf *AnalyzerConf) *AnalyzerClient {
	return &AnalyzerClient{
		conf:   conf,
		client: newHTTPClient(conf.RequestTimeoutSecs, conf.IdleConnTimeoutSecs),
	}
}
