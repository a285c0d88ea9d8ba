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

package rdb

import (
	"clausefeat/results"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MsgNewQuery                = "newQuery"
	MsgNewResult               = "newResult"
	DefaultQueueKey            = "clausefeatQueue"
	DefaultResultChannelPrefix = "clausefeatResults"
	DefaultQueryChannel        = "clausefeatQueries"
	DefaultResultExpiration    = 10 * time.Minute
	connectionTestRetryDelay   = 2 * time.Second
)

var (
	ErrorEmptyQueue = errors.New("no queries in the queue")
)

type Query struct {
	Channel string          `json:"channel"`
	Func    string          `json:"func"`
	Args    json.RawMessage `json:"args"`
}

func (q Query) ToJSON() (string, error) {
	ans, err := sonic.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

func DecodeQuery(q string) (Query, error) {
	var ans Query
	err := sonic.Unmarshal([]byte(q), &ans)
	return ans, err
}

// JobLogger receives logs of jobs finished by workers
type JobLogger interface {
	Log(rec results.JobLog)
}

type NullJobLogger struct{}

func (n *NullJobLogger) Log(rec results.JobLog) {}

type Adapter struct {
	ctx                 context.Context
	c                   *redis.Client
	conf                *Conf
	channelQuery        string
	channelResultPrefix string
	jobLogger           JobLogger
}

// TestConnection pings Redis until it responds or until
// the timeout is reached.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(connectionTestRetryDelay)
	defer tick.Stop()
	timeoutCh := time.After(timeout)
	for {
		err := a.c.Ping(a.ctx).Err()
		if err == nil {
			log.Info().Str("server", a.conf.ServerInfo()).Msg("Redis connection OK")
			return nil
		}
		log.Error().
			Err(err).
			Str("server", a.conf.ServerInfo()).
			Msg("failed to ping Redis, will try again")
		select {
		case <-timeoutCh:
			return fmt.Errorf("failed to connect to Redis server %s: %w", a.conf.ServerInfo(), err)
		case <-a.ctx.Done():
			return a.ctx.Err()
		case <-tick.C:
		}
	}
}

func (a *Adapter) SomeoneListens(query Query) (bool, error) {
	cmd := a.c.PubSubNumSub(a.ctx, query.Channel)
	if cmd.Err() != nil {
		return false, fmt.Errorf("failed to check channel listeners: %w", cmd.Err())
	}
	return cmd.Val()[query.Channel] > 0, nil
}

// QueryAnswerTimeout is the maximum time a client should wait
// for a worker to answer a query
func (a *Adapter) QueryAnswerTimeout() time.Duration {
	return time.Duration(a.conf.QueryAnswerTimeoutSecs) * time.Second
}

// PublishQuery publishes a new query and returns a channel
// the result will be sent to once a worker finishes the job.
func (a *Adapter) PublishQuery(query Query) (<-chan *WorkerResult, error) {
	query.Channel = fmt.Sprintf("%s:%s", a.channelResultPrefix, uuid.New().String())
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("publishing query")

	msg, err := query.ToJSON()
	if err != nil {
		return nil, err
	}
	// we must subscribe before the query becomes visible to workers
	sub := a.c.Subscribe(a.ctx, query.Channel)
	if _, err := sub.Receive(a.ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe result channel: %w", err)
	}
	if err := a.c.LPush(a.ctx, DefaultQueueKey, msg).Err(); err != nil {
		sub.Close()
		return nil, err
	}
	ans := make(chan *WorkerResult, 1)

	// now we wait for response and send result via `ans`
	go func() {
		defer func() {
			sub.Close()
			close(ans)
		}()
		result := new(WorkerResult)
		var item *redis.Message
		select {
		case item = <-sub.Channel():
		case <-time.After(a.QueryAnswerTimeout()):
			log.Warn().Str("channel", query.Channel).Msg("no worker answered the query in time")
			return
		case <-a.ctx.Done():
			return
		}
		cmd := a.c.Get(a.ctx, item.Payload)
		if cmd.Err() != nil {
			result.AttachValue(&results.ErrorResult{Func: query.Func, Error: cmd.Err().Error()})

		} else if err := sonic.Unmarshal([]byte(cmd.Val()), result); err != nil {
			result.AttachValue(&results.ErrorResult{Func: query.Func, Error: err.Error()})

		} else if result.JobLog.WorkerID != "" {
			a.jobLogger.Log(result.JobLog)
		}
		ans <- result
	}()
	return ans, a.c.Publish(a.ctx, a.channelQuery, MsgNewQuery).Err()
}

func (a *Adapter) DequeueQuery() (Query, error) {
	cmd := a.c.RPop(a.ctx, DefaultQueueKey)
	if cmd.Err() == redis.Nil {
		return Query{}, ErrorEmptyQueue

	} else if cmd.Err() != nil {
		return Query{}, fmt.Errorf("failed to dequeue query: %w", cmd.Err())
	}
	q, err := DecodeQuery(cmd.Val())
	if err != nil {
		return Query{}, fmt.Errorf("failed to deserialize query: %w", err)
	}
	return q, nil
}

func (a *Adapter) PublishResult(channelName string, value *WorkerResult) error {
	log.Debug().
		Str("channel", channelName).
		Str("resultType", value.ResultType.String()).
		Msg("publishing result")
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := a.c.Set(a.ctx, channelName, string(data), DefaultResultExpiration).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return a.c.Publish(a.ctx, channelName, channelName).Err()
}

func (a *Adapter) Subscribe() <-chan *redis.Message {
	sub := a.c.Subscribe(a.ctx, a.channelQuery)
	return sub.Channel()
}

func NewAdapter(conf *Conf, ctx context.Context, jobLogger JobLogger) *Adapter {
	chRes := conf.ChannelResultPrefix
	chQuery := conf.ChannelQuery
	if chRes == "" {
		chRes = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", chRes).
			Msg("Redis channel for results not specified, using default")
	}
	if chQuery == "" {
		chQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", chQuery).
			Msg("Redis channel for queries not specified, using default")
	}
	if jobLogger == nil {
		jobLogger = &NullJobLogger{}
	}
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     conf.ServerInfo(),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:                 ctx,
		conf:                conf,
		channelQuery:        chQuery,
		channelResultPrefix: chRes,
		jobLogger:           jobLogger,
	}
}
