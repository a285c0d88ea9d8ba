// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
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
	"errors"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	StaleWorkerLoadTTL       = time.Hour * 24
	tickerIntervalSecs int64 = 10
	recentLogSize            = 100
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// WorkerJobLogger collects logs of jobs finished by workers
// and provides workers' load overview.
type WorkerJobLogger struct {
	loadData     WorkersLoad
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[results.JobLog]
	tz           *time.Location
	numTicks     int64
	statusWriter StatusWriter
}

func (w *WorkerJobLogger) Log(rec results.JobLog) {
	w.dataLock.Lock()
	defer w.dataLock.Unlock()

	entry, ok := w.loadData[rec.WorkerID]
	if !ok {
		entry.FirstUpdate = rec.Begin
	}
	entry.NumJobs++
	entry.LastUpdate = rec.End
	if rec.Err != nil {
		entry.NumErrors++
	}
	entry.NumRows += rec.NumRows
	entry.NumFailures += rec.NumFailures
	entry.TotalTimeSecs += rec.TimeSpent().Seconds()
	w.loadData[rec.WorkerID] = entry
	w.recentLog.Append(rec)
	w.statusWriter.Write(rec)
}

func (w *WorkerJobLogger) TotalLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.loadData.SumLoad(w.tz)
}

func (w *WorkerJobLogger) RecentLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	workers := collections.NewSet[string]()
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		workers.Add(item.WorkerID)
		if i == 0 {
			ans.FirstUpdate = item.Begin
		}
		ans.LastUpdate = item.End
		if item.Err != nil {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.NumRows += item.NumRows
		ans.NumFailures += item.NumFailures
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	ans.NumWorkers = workers.Size()
	return ans
}

func (w *WorkerJobLogger) RecentRecords() []results.JobLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]results.JobLog, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		ans[i] = item
		return true
	})
	return ans
}

func (w *WorkerJobLogger) TotalWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.loadData[workerID]
	if !ok {
		return ans, ErrWorkerNotFound
	}
	return ans, nil
}

func (w *WorkerJobLogger) RecentWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	var found bool
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		if item.WorkerID != workerID {
			return true
		}
		if !found {
			ans.FirstUpdate = item.End
			found = true
		}
		ans.LastUpdate = item.End
		if item.Err != nil {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.NumRows += item.NumRows
		ans.NumFailures += item.NumFailures
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	if found {
		ans.NumWorkers = 1
		return ans, nil
	}
	return ans, ErrWorkerNotFound
}

func (w *WorkerJobLogger) Start(ctx context.Context) {
	ticksPerCleanup := int64(StaleWorkerLoadTTL.Seconds()) / tickerIntervalSecs
	w.statusWriter.Start(ctx)
	log.Info().Msg("starting worker job logger")
	go func() {
		ticker := time.NewTicker(time.Duration(tickerIntervalSecs) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				if ctx.Err() != nil { // should be always true here
					log.Info().Msg("requesting worker job logger stop")
				}
				return
			case <-ticker.C:
				if w.numTicks%ticksPerCleanup == 0 {
					w.dataLock.Lock()
					w.loadData.cleanOldRecords()
					w.dataLock.Unlock()
					w.numTicks = 0

				} else {
					w.numTicks++
				}
			}
		}
	}()
}

func (w *WorkerJobLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down worker job logger")
	return w.statusWriter.Stop(ctx)
}

func NewWorkerJobLogger(
	statusWriter StatusWriter,
	tz *time.Location,
) *WorkerJobLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &WorkerJobLogger{
		loadData:     make(WorkersLoad),
		recentLog:    collections.NewCircularList[results.JobLog](recentLogSize),
		statusWriter: statusWriter,
		tz:           tz,
	}
}
