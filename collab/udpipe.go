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
	"clausefeat/syntax"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

type udpipeResponse struct {
	Model            string   `json:"model"`
	Acknowledgements []string `json:"acknowledgements"`
	Result           string   `json:"result"`
}

// UDPipeClient calls the UDPipe REST service to tokenize, tag
// and parse texts. The service must respond with CoNLL-U data.
type UDPipeClient struct {
	conf   *ParserConf
	client *http.Client
}

func (c *UDPipeClient) processURL() string {
	return strings.TrimRight(c.conf.URL, "/") + "/process"
}

// Process returns raw CoNLL-U output for the provided text.
func (c *UDPipeClient) Process(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("model", c.conf.Model)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("parser", "")
	form.Set("data", text)
	req, err := http.NewRequest(http.MethodPost, c.processURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create UDPipe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	body, err := doRequest(ctx, c.client, req)
	if err != nil {
		return "", err
	}
	var resp udpipeResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode UDPipe response: %w", err)
	}
	log.Debug().
		Str("model", resp.Model).
		Int("textLength", len(text)).
		Msg("UDPipe response received")
	return resp.Result, nil
}

func (c *UDPipeClient) Parse(ctx context.Context, text string) (syntax.Document, error) {
	data, err := c.Process(ctx, text)
	if err != nil {
		return nil, err
	}
	doc, err := syntax.DecodeCoNLLU(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse UDPipe output: %w", err)
	}
	return doc, nil
}

func NewUDPipeClient(conf *ParserConf) *UDPipeClient {
	return &UDPipeClient{
		conf:   conf,
		client: newHTTPClient(conf.RequestTimeoutSecs, conf.IdleConnTimeoutSecs),
	}
}
