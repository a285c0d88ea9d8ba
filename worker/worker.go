// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
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

package worker

import (
	"clausefeat/rdb"
	"clausefeat/results"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

// queryQueue is the part of the Redis adapter a worker
// needs to obtain queries and publish their results
type queryQueue interface {
	DequeueQuery() (rdb.Query, error)
	SomeoneListens(query rdb.Query) (bool, error)
	PublishResult(channelName string, value *rdb.WorkerResult) error
}

type recoveredError struct {
	error
}

type Worker struct {
	ID           string
	messages     <-chan *redis.Message
	queue        queryQueue
	annotator    rowAnnotator
	batchConf    BatchConf
	ticker       *time.Ticker
	currJobLog   *results.JobLog
	done         chan struct{}
	cancelListen context.CancelFunc
}

func (w *Worker) publishResult(res results.SerializableResult, channel string) error {
	w.currJobLog.End = time.Now()
	w.currJobLog.Err = res.Err()
	ans, err := rdb.CreateWorkerResult(res, *w.currJobLog)
	if err != nil {
		return err
	}
	log.Info().
		Str("func", w.currJobLog.Func).
		Int("numRows", w.currJobLog.NumRows).
		Int("numFailures", w.currJobLog.NumFailures).
		Dur("timeSpent", w.currJobLog.TimeSpent()).
		Err(w.currJobLog.Err).
		Msg("job finished")
	w.currJobLog = nil
	return w.queue.PublishResult(channel, ans)
}

func (w *Worker) runQueryProtected(ctx context.Context, query rdb.Query) (ansErr error) {
	defer func() {
		if r := recover(); r != nil {
			ansErr = recoveredError{fmt.Errorf("recovered error: %v", r)}
			return
		}
	}()
	switch query.Func {
	case rdb.FuncAnnotate:
		ans := w.annotate(ctx, query.Args)
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
	default:
		ans := &results.ErrorResult{
			Func:  query.Func,
			Error: fmt.Sprintf("unknown query function: %s", query.Func),
		}
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) tryNextQuery(ctx context.Context) error {
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.queue.DequeueQuery()
	if err == rdb.ErrorEmptyQueue {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("received query")

	isActive, err := w.queue.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	w.currJobLog = &results.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}

	err = w.runQueryProtected(ctx, query)
	var rcvErr recoveredError
	if errors.As(err, &rcvErr) {
		if w.currJobLog == nil {
			w.currJobLog = &results.JobLog{WorkerID: w.ID, Func: query.Func, Begin: time.Now()}
		}
		ans := &results.ErrorResult{
			Error: fmt.Sprintf("worker panicked: %s", rcvErr.Error()),
			Func:  query.Func,
		}
		return w.publishResult(ans, query.Channel)
	}
	return err
}

func (w *Worker) listen(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-w.ticker.C:
			if err := w.tryNextQuery(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process query")
			}
		case <-ctx.Done():
			log.Info().Msg("worker exiting")
			return
		case msg, ok := <-w.messages:
			if !ok {
				log.Warn().Msg("query channel closed, worker exiting")
				return
			}
			if msg.Payload == rdb.MsgNewQuery {
				if err := w.tryNextQuery(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			}
		}
	}
}

func (w *Worker) Start(ctx context.Context) {
	listenCtx, cancel := context.WithCancel(ctx)
	w.cancelListen = cancel
	go w.listen(listenCtx)
	log.Info().Str("workerId", w.ID).Msg("worker started")
}

func (w *Worker) Stop(ctx context.Context) error {
	w.ticker.Stop()
	if w.cancelListen != nil {
		w.cancelListen()
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s did not finish in time: %w", w.ID, ctx.Err())
	}
}

func NewWorker(
	workerID string,
	queue queryQueue,
	messages <-chan *redis.Message,
	annotator rowAnnotator,
	batchConf BatchConf,
) *Worker {
	return &Worker{
		ID:        workerID,
		queue:     queue,
		messages:  messages,
		annotator: annotator,
		batchConf: batchConf,
		ticker:    time.NewTicker(DefaultTickerInterval),
		done:      make(chan struct{}),
	}
}
