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

package engine

import (
	"clausefeat/merror"
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	dfltBatchNumWorkers = 4
)

// RowResult is an annotation of a single row within a batch.
// Err is non-nil for degraded rows (see Annotator.Annotate).
type RowResult struct {
	Record AnnotationRecord
	Err    error
}

type BatchOptions struct {
	NumWorkers int

	// RowTimeout limits processing of a single row (zero means
	// no limit)
	RowTimeout time.Duration

	// OnRowDone is called (concurrently) each time a row is finished
	OnRowDone func(idx int, res RowResult)
}

func (a *Annotator) annotateProtected(ctx context.Context, row Row) (ans AnnotationRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			ans = UnknownRecord(row)
			err = merror.RecoveredError{Msg: merror.PanicValueToErr(r).Error()}
			log.Error().Err(err).Str("verb", row.Verb).Msg("annotation of row panicked")
		}
	}()
	return a.Annotate(ctx, row)
}

// AnnotateBatch annotates rows concurrently. The results are in
// the order of the input rows. A failure of a row never affects other
// rows.
func (a *Annotator) AnnotateBatch(ctx context.Context, rows []Row, opts BatchOptions) []RowResult {
	ans := make([]RowResult, len(rows))
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = dfltBatchNumWorkers
	}
	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i, row := range rows {
		g.Go(func() error {
			var res RowResult
			if err := ctx.Err(); err != nil {
				res = RowResult{
					Record: UnknownRecord(row),
					Err:    merror.ParseFailure{Msg: "batch cancelled", Cause: err},
				}

			} else {
				rowCtx := ctx
				if opts.RowTimeout > 0 {
					var cancel context.CancelFunc
					rowCtx, cancel = context.WithTimeout(ctx, opts.RowTimeout)
					defer cancel()
				}
				res.Record, res.Err = a.annotateProtected(rowCtx, row)
			}
			ans[i] = res
			if opts.OnRowDone != nil {
				opts.OnRowDone(i, res)
			}
			return nil
		})
	}
	g.Wait()
	return ans
}
