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
	"clausefeat/merror"
	"clausefeat/rdb"
	"clausefeat/results"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	DfltMaxBatchRows = 1000
)

// queryPublisher is the part of the Redis adapter used
// by the API to delegate jobs to workers
type queryPublisher interface {
	PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error)
	QueryAnswerTimeout() time.Duration
}

type Actions struct {
	radapter     queryPublisher
	maxBatchRows int
}

func validateRow(row engine.Row, idx int) error {
	if strings.TrimSpace(row.Verb) == "" {
		return merror.InputError{Msg: fmt.Sprintf("row %d: missing verb", idx)}
	}
	if strings.TrimSpace(row.Target) == "" {
		return merror.InputError{Msg: fmt.Sprintf("row %d: missing target", idx)}
	}
	return nil
}

func decodeBody(ctx *gin.Context, v any) error {
	data, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return merror.InputError{Msg: fmt.Sprintf("failed to read request body: %s", err)}
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return merror.InputError{Msg: fmt.Sprintf("invalid request body: %s", err)}
	}
	return nil
}

func respondWithError(ctx *gin.Context, err error) {
	var inputErr merror.InputError
	var timeoutErr merror.TimeoutError
	if errors.As(err, &inputErr) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)

	} else if errors.As(err, &timeoutErr) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusGatewayTimeout)

	} else {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
	}
}

// runAnnotation publishes rows as a single job and waits for
// the result
func (a *Actions) runAnnotation(rows []engine.Row) (results.Annotation, error) {
	query, err := rdb.NewAnnotateQuery(rows)
	if err != nil {
		return results.Annotation{}, merror.InternalError{Msg: err.Error()}
	}
	wait, err := a.radapter.PublishQuery(query)
	if err != nil {
		return results.Annotation{}, merror.InternalError{
			Msg: fmt.Sprintf("failed to publish query: %s", err)}
	}
	select {
	case rawResult, ok := <-wait:
		if !ok || rawResult == nil {
			return results.Annotation{}, merror.TimeoutError{
				Msg: "no worker answered the query in time"}
		}
		ans, err := rdb.DeserializeAnnotationResult(rawResult)
		if err != nil {
			return ans, merror.InternalError{Msg: err.Error()}
		}
		if err := ans.Err(); err != nil {
			return ans, merror.InputError{Msg: err.Error()}
		}
		if len(ans.Rows) != len(rows) {
			return ans, merror.InternalError{
				Msg: fmt.Sprintf("worker returned %d rows, expected %d", len(ans.Rows), len(rows))}
		}
		return ans, nil
	case <-time.After(a.radapter.QueryAnswerTimeout() + time.Second):
		return results.Annotation{}, merror.TimeoutError{
			Msg: "no worker answered the query in time"}
	}
}

// Annotate godoc
// @Summary      Annotate a single row
// @Description  Resolves tense, aspect, person and number of the main and the subordinate clause of a target sentence and determines the conjunction connecting them.
// @Accept       json
// @Produce      json
// @Param        row body engine.Row true "row to annotate"
// @Success      200 {object} results.AnnotatedRow
// @Failure      400 {object} uniresp.ActionError
// @Failure      504 {object} uniresp.ActionError
// @Router       /annotate [post]
func (a *Actions) Annotate(ctx *gin.Context) {
	var row engine.Row
	if err := decodeBody(ctx, &row); err != nil {
		respondWithError(ctx, err)
		return
	}
	if err := validateRow(row, 0); err != nil {
		respondWithError(ctx, err)
		return
	}
	ans, err := a.runAnnotation([]engine.Row{row})
	if err != nil {
		log.Error().Err(err).Str("verb", row.Verb).Msg("failed to annotate row")
		respondWithError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans.Rows[0])
}

// AnnotateBatch godoc
// @Summary      Annotate multiple rows
// @Description  Annotates rows in a single job. The response rows are in the order of the request rows. A row which cannot be parsed contains an error and unknown features.
// @Accept       json
// @Produce      json
// @Param        rows body []engine.Row true "rows to annotate"
// @Success      200 {object} results.Annotation
// @Failure      400 {object} uniresp.ActionError
// @Failure      504 {object} uniresp.ActionError
// @Router       /annotate-batch [post]
func (a *Actions) AnnotateBatch(ctx *gin.Context) {
	var rows []engine.Row
	if err := decodeBody(ctx, &rows); err != nil {
		respondWithError(ctx, err)
		return
	}
	if len(rows) == 0 {
		respondWithError(ctx, merror.InputError{Msg: "no rows to annotate"})
		return
	}
	if len(rows) > a.maxBatchRows {
		respondWithError(ctx, merror.InputError{
			Msg: fmt.Sprintf("too many rows (max. %d)", a.maxBatchRows)})
		return
	}
	for i, row := range rows {
		if err := validateRow(row, i); err != nil {
			respondWithError(ctx, err)
			return
		}
	}
	ans, err := a.runAnnotation(rows)
	if err != nil {
		log.Error().Err(err).Int("numRows", len(rows)).Msg("failed to annotate rows")
		respondWithError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, &ans)
}

func NewActions(radapter queryPublisher, maxBatchRows int) *Actions {
	if maxBatchRows <= 0 {
		maxBatchRows = DfltMaxBatchRows
	}
	return &Actions{
		radapter:     radapter,
		maxBatchRows: maxBatchRows,
	}
}
