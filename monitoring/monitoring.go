// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
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

package monitoring

import (
	"clausefeat/results"
	"context"
	"time"

	"github.com/czcorpus/hltscl"
)

type Conf struct {
	DB hltscl.PgConf `json:"db"`
}

// StatusWriter stores job logs to a persistent storage
type StatusWriter interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Write(item results.JobLog)
}

type NullStatusWriter struct{}

func (n *NullStatusWriter) Start(ctx context.Context) {}

func (n *NullStatusWriter) Stop(ctx context.Context) error {
	return nil
}

func (n *NullStatusWriter) Write(item results.JobLog) {}

// WorkersLoad maps worker IDs to their accumulated load
type WorkersLoad map[string]WorkerLoad

// SumLoad aggregates load of all the workers
func (wl WorkersLoad) SumLoad(tz *time.Location) WorkerLoad {
	var ans WorkerLoad
	for _, v := range wl {
		ans.NumJobs += v.NumJobs
		ans.NumErrors += v.NumErrors
		ans.NumRows += v.NumRows
		ans.NumFailures += v.NumFailures
		ans.TotalTimeSecs += v.TotalTimeSecs
		if ans.FirstUpdate.IsZero() || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate.In(tz)
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate.In(tz)
		}
	}
	ans.NumWorkers = len(wl)
	return ans
}

// cleanOldRecords removes workers which have not reported
// anything for StaleWorkerLoadTTL
func (wl WorkersLoad) cleanOldRecords() {
	now := time.Now()
	for k, v := range wl {
		if now.Sub(v.LastUpdate) > StaleWorkerLoadTTL {
			delete(wl, k)
		}
	}
}
