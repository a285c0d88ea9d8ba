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

package worker

import (
	"clausefeat/engine"
	"clausefeat/merror"
	"clausefeat/rdb"
	"clausefeat/results"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

const (
	dfltNumWorkers     = 4
	dfltRowTimeoutSecs = 30
)

// BatchConf controls how rows of a single job are processed
type BatchConf struct {
	NumWorkers     int `json:"numWorkers"`
	RowTimeoutSecs int `json:"rowTimeoutSecs"`
}

func (conf *BatchConf) RowTimeout() time.Duration {
	return time.Duration(conf.RowTimeoutSecs) * time.Second
}

func (conf *BatchConf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.NumWorkers < 0 {
		return fmt.Errorf("`%s.numWorkers` must be a positive number", confContext)
	}
	if conf.NumWorkers == 0 {
		conf.NumWorkers = dfltNumWorkers
		log.Warn().
			Int("value", dfltNumWorkers).
			Msgf("`%s.numWorkers` not set, using default", confContext)
	}
	if conf.RowTimeoutSecs == 0 {
		conf.RowTimeoutSecs = dfltRowTimeoutSecs
		log.Warn().
			Int("value", dfltRowTimeoutSecs).
			Msgf("`%s.rowTimeoutSecs` not set, using default", confContext)
	}
	return nil
}

type rowAnnotator interface {
	AnnotateBatch(ctx context.Context, rows []engine.Row, opts engine.BatchOptions) []engine.RowResult
}

// ToAnnotation converts batch results to a serializable job result
func ToAnnotation(items []engine.RowResult) *results.Annotation {
	ans := &results.Annotation{Rows: make([]results.AnnotatedRow, len(items))}
	for i, item := range items {
		ans.Rows[i].Record = item.Record
		if item.Err != nil {
			ans.Rows[i].Error = item.Err.Error()
		}
	}
	return ans
}

func (w *Worker) annotate(ctx context.Context, rawArgs json.RawMessage) *results.Annotation {
	var args rdb.AnnotateArgs
	if err := sonic.Unmarshal(rawArgs, &args); err != nil {
		return &results.Annotation{
			Error: merror.InputError{Msg: fmt.Sprintf("invalid arguments: %s", err)}.Error(),
		}
	}
	if len(args.Rows) == 0 {
		return &results.Annotation{Error: merror.InputError{Msg: "no rows to annotate"}.Error()}
	}
	items := w.annotator.AnnotateBatch(ctx, args.Rows, engine.BatchOptions{
		NumWorkers: w.batchConf.NumWorkers,
		RowTimeout: w.batchConf.RowTimeout(),
	})
	ans := ToAnnotation(items)
	if w.currJobLog != nil {
		w.currJobLog.NumRows = len(ans.Rows)
		w.currJobLog.NumFailures = ans.NumFailures()
	}
	return ans
}
