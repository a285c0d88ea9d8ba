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

package handlers

import (
	"clausefeat/engine"
	"clausefeat/rdb"
	"clausefeat/results"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher answers queries immediately the way a worker would
type fakePublisher struct {
	noWorker bool
	queries  []rdb.Query
}

func (fp *fakePublisher) PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error) {
	fp.queries = append(fp.queries, query)
	ans := make(chan *rdb.WorkerResult, 1)
	if fp.noWorker {
		close(ans)
		return ans, nil
	}
	var args rdb.AnnotateArgs
	if err := sonic.Unmarshal(query.Args, &args); err != nil {
		return nil, err
	}
	value := &results.Annotation{}
	for _, row := range args.Rows {
		rec := engine.UnknownRecord(row)
		var errMsg string
		if row.Target == "broken" {
			errMsg = "failed to parse target"

		} else {
			rec.Conjunction = "что"
			rec.Unresolved = nil
		}
		value.Rows = append(value.Rows, results.AnnotatedRow{Record: rec, Error: errMsg})
	}
	wr, err := rdb.CreateWorkerResult(value, results.JobLog{WorkerID: "w1"})
	if err != nil {
		return nil, err
	}
	ans <- wr
	close(ans)
	return ans, nil
}

func (fp *fakePublisher) QueryAnswerTimeout() time.Duration {
	return time.Second
}

func newTestEngine(pub *fakePublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	actions := NewActions(pub, 3)
	e := gin.New()
	e.POST("/annotate", actions.Annotate)
	e.POST("/annotate-batch", actions.AnnotateBatch)
	return e
}

func doPost(e *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)
	return w
}

func TestAnnotateSingleRow(t *testing.T) {
	pub := &fakePublisher{}
	w := doPost(newTestEngine(pub), "/annotate", `{"source":"s1","verb":"думать","target":"Она думала, что он придёт."}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, pub.queries, 1)
	assert.Equal(t, rdb.FuncAnnotate, pub.queries[0].Func)

	var row results.AnnotatedRow
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, "s1", row.Record.Source)
	assert.Equal(t, "что", row.Record.Conjunction)
	assert.Empty(t, row.Error)
}

func TestAnnotateInvalidInput(t *testing.T) {
	pub := &fakePublisher{}
	e := newTestEngine(pub)
	assert.Equal(t, http.StatusBadRequest, doPost(e, "/annotate", `{"verb":"думать"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doPost(e, "/annotate", `{"verb":`).Code)
	assert.Equal(t, http.StatusBadRequest, doPost(e, "/annotate-batch", `[]`).Code)
	assert.Equal(t, http.StatusBadRequest, doPost(e, "/annotate-batch",
		`[{"verb":"a","target":"b"},{"verb":"a","target":"b"},{"verb":"a","target":"b"},{"verb":"a","target":"b"}]`).Code)
	assert.Empty(t, pub.queries)
}

func TestAnnotateBatch(t *testing.T) {
	pub := &fakePublisher{}
	w := doPost(newTestEngine(pub), "/annotate-batch",
		`[{"source":"1","verb":"думать","target":"Она думала."},{"source":"2","verb":"думать","target":"broken"}]`)
	require.Equal(t, http.StatusOK, w.Code)
	var ans results.Annotation
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &ans))
	require.Len(t, ans.Rows, 2)
	assert.Equal(t, "1", ans.Rows[0].Record.Source)
	assert.Equal(t, "2", ans.Rows[1].Record.Source)
	assert.Equal(t, "-", ans.Rows[1].Record.Conjunction)
	assert.Equal(t, "failed to parse target", ans.Rows[1].Error)
}

func TestAnnotateNoWorker(t *testing.T) {
	w := doPost(newTestEngine(&fakePublisher{noWorker: true}), "/annotate",
		`{"verb":"думать","target":"Она думала."}`)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}
