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

package proxied

import (
	"clausefeat/collab"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeProcessor struct {
	err error
}

func (fp fakeProcessor) Process(ctx context.Context, text string) (string, error) {
	if fp.err != nil {
		return "", fp.err
	}
	return "1\t" + text + "\t_\t_\t_\t_\t0\troot\t_\t_\n\n", nil
}

func doParse(proc fakeProcessor, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.POST("/parse", NewActions(proc).RemoteParser)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(body)))
	return w
}

func TestRemoteParser(t *testing.T) {
	w := doParse(fakeProcessor{}, "Думаю")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("content-type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "1\tДумаю"))
}

func TestRemoteParserErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, doParse(fakeProcessor{}, "  ").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge,
		doParse(fakeProcessor{}, strings.Repeat("a", maxParseTextLength+1)).Code)
	assert.Equal(t, http.StatusBadGateway,
		doParse(fakeProcessor{err: collab.ServiceError{Status: 500}}, "text").Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		doParse(fakeProcessor{err: errors.New("connection refused")}, "text").Code)
}
