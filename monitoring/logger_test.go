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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	NullStatusWriter
	items []results.JobLog
}

func (rw *recordingWriter) Write(item results.JobLog) {
	rw.items = append(rw.items, item)
}

func jobLog(workerID string, begin time.Time, secs int, numRows int, err error) results.JobLog {
	return results.JobLog{
		WorkerID: workerID,
		Func:     "annotate",
		Begin:    begin,
		End:      begin.Add(time.Duration(secs) * time.Second),
		Err:      err,
		NumRows:  numRows,
	}
}

func TestWorkerJobLogger(t *testing.T) {
	writer := &recordingWriter{}
	logger := NewWorkerJobLogger(writer, time.UTC)
	t0 := time.Now().Add(-time.Minute)
	logger.Log(jobLog("w1", t0, 2, 10, nil))
	logger.Log(jobLog("w2", t0.Add(time.Second), 4, 5, errors.New("failed")))
	logger.Log(jobLog("w1", t0.Add(10*time.Second), 2, 3, nil))

	assert.Len(t, writer.items, 3)

	total := logger.TotalLoad()
	assert.Equal(t, 3, total.NumJobs)
	assert.Equal(t, 1, total.NumErrors)
	assert.Equal(t, 18, total.NumRows)
	assert.Equal(t, 2, total.NumWorkers)
	assert.InDelta(t, 8.0, total.TotalTimeSecs, 0.001)

	recent := logger.RecentLoad()
	assert.Equal(t, 3, recent.NumJobs)
	assert.Equal(t, 2, recent.NumWorkers)

	w1, err := logger.RecentWorkerLoad("w1")
	require.NoError(t, err)
	assert.Equal(t, 2, w1.NumJobs)
	assert.Equal(t, 13, w1.NumRows)

	_, err = logger.TotalWorkerLoad("w3")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
	_, err = logger.RecentWorkerLoad("w3")
	assert.ErrorIs(t, err, ErrWorkerNotFound)

	assert.Len(t, logger.RecentRecords(), 3)
}

func TestWorkersLoadCleanup(t *testing.T) {
	wl := WorkersLoad{
		"stale":  WorkerLoad{NumJobs: 1, LastUpdate: time.Now().Add(-2 * StaleWorkerLoadTTL)},
		"active": WorkerLoad{NumJobs: 2, LastUpdate: time.Now()},
	}
	wl.cleanOldRecords()
	assert.Len(t, wl, 1)
	assert.Contains(t, wl, "active")
}

func TestWorkerLoadAvgLoad(t *testing.T) {
	assert.Equal(t, 0.0, WorkerLoad{}.AvgLoad())
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wl := WorkerLoad{
		TotalTimeSecs: 50,
		FirstUpdate:   t0,
		LastUpdate:    t0.Add(100 * time.Second),
		NumWorkers:    1,
	}
	assert.InDelta(t, 0.5, wl.AvgLoad(), 0.0001)
}
