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

package main

import (
	"clausefeat/archive"
	"clausefeat/cnf"
	"clausefeat/engine"
	"clausefeat/results"
	"clausefeat/table"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(conf *cnf.Conf) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware(conf))
	router.Use(AuthRequired(conf))
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})
	return router
}

func TestAuthRequired(t *testing.T) {
	conf := &cnf.Conf{AuthHeaderName: "X-Api-Key", AuthTokens: []string{"secret"}}
	router := newTestRouter(conf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Api-Key", "secret")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthNotConfigured(t *testing.T) {
	router := newTestRouter(&cnf.Conf{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	conf := &cnf.Conf{CorsAllowedOrigins: []string{"https://example.org"}}
	router := newTestRouter(conf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.org")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://other.org")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBatchArgsFormats(t *testing.T) {
	args := batchArgs{inputPath: "in.tsv", outputPath: "out.jsonl"}
	inFormat, err := args.inputFormat()
	require.NoError(t, err)
	assert.Equal(t, table.FormatTSV, inFormat)
	outFormat, err := args.outputFormat(inFormat)
	require.NoError(t, err)
	assert.Equal(t, table.FormatJSONL, outFormat)

	args = batchArgs{inputPath: "in.txt", outputPath: "out.txt", format: "csv"}
	inFormat, err = args.inputFormat()
	require.NoError(t, err)
	assert.Equal(t, table.FormatCSV, inFormat)
	outFormat, err = args.outputFormat(inFormat)
	require.NoError(t, err)
	assert.Equal(t, table.FormatCSV, outFormat)

	args = batchArgs{inputPath: "in.csv", format: "xml"}
	_, err = args.inputFormat()
	assert.Error(t, err)
}

func TestWriteOutputRows(t *testing.T) {
	var sb strings.Builder
	rows := []results.AnnotatedRow{
		{Record: engine.UnknownRecord(engine.Row{Verb: "думать", Target: "что он придёт"})},
	}
	require.NoError(t, writeOutputRows(&sb, table.FormatTSV, rows))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Source\tVerb"))
	assert.Contains(t, lines[1], "думать")
}

func TestArchiveRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ann := &results.Annotation{
		Rows: []results.AnnotatedRow{
			{Record: engine.UnknownRecord(engine.Row{Verb: "думать"})},
			{Record: engine.UnknownRecord(engine.Row{Verb: "знать"}), Error: "parser failure"},
		},
	}
	run, err := archiveRows(context.Background(), path, "input.csv", ann)
	require.NoError(t, err)
	assert.Equal(t, "input.csv", run.Input)
	assert.Equal(t, 2, run.NumRows)
	assert.Equal(t, 1, run.NumFailures)
	assert.NotNil(t, run.FinishedAt)
}

func TestWriteArchived(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	ann := &results.Annotation{
		Rows: []results.AnnotatedRow{
			{Record: engine.UnknownRecord(engine.Row{Verb: "думать"})},
			{Record: engine.UnknownRecord(engine.Row{Verb: "знать"}), Error: "parser failure"},
		},
	}
	run, err := archiveRows(ctx, path, "input.csv", ann)
	require.NoError(t, err)
	_, err = archiveRows(ctx, path, "other.csv", ann)
	require.NoError(t, err)

	arch, err := archive.Open(path)
	require.NoError(t, err)
	defer arch.Close()

	var sb strings.Builder
	require.NoError(t, writeArchived(ctx, &sb, arch, runsArgs{limit: 1}))
	assert.Len(t, strings.Split(strings.TrimSpace(sb.String()), "\n"), 1)

	sb.Reset()
	require.NoError(t, writeArchived(ctx, &sb, arch, runsArgs{}))
	assert.Len(t, strings.Split(strings.TrimSpace(sb.String()), "\n"), 2)

	sb.Reset()
	require.NoError(t, writeArchived(ctx, &sb, arch, runsArgs{runID: run.ID, format: "tsv"}))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "думать")
	assert.Contains(t, lines[2], "знать")

	sb.Reset()
	err = writeArchived(ctx, &sb, arch, runsArgs{runID: "nonexistent"})
	assert.ErrorIs(t, err, archive.ErrRunNotFound)
}
