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

package rdb

import (
	"clausefeat/engine"
	"clausefeat/morph"
	"clausefeat/results"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRoundTrip(t *testing.T) {
	q, err := NewAnnotateQuery([]engine.Row{{Verb: "думать", Target: "Она думала"}})
	require.NoError(t, err)
	q.Channel = "clausefeatResults:1234"
	data, err := q.ToJSON()
	require.NoError(t, err)

	q2, err := DecodeQuery(data)
	require.NoError(t, err)
	assert.Equal(t, FuncAnnotate, q2.Func)
	assert.Equal(t, q.Channel, q2.Channel)
	var args AnnotateArgs
	require.NoError(t, sonic.Unmarshal(q2.Args, &args))
	require.Len(t, args.Rows, 1)
	assert.Equal(t, "Она думала", args.Rows[0].Target)
}

func TestWorkerResultAnnotation(t *testing.T) {
	rec := engine.UnknownRecord(engine.Row{Verb: "думать"})
	rec.Main.Tense = morph.TensePast
	rec.Unresolved = []engine.Role{engine.RoleSubordinate}
	value := &results.Annotation{
		Rows: []results.AnnotatedRow{{Record: rec}, {Record: rec, Error: "parse failed"}},
	}
	jobLog := results.JobLog{
		WorkerID: "w1",
		Func:     FuncAnnotate,
		Begin:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 1, 10, 0, 2, 0, time.UTC),
		Err:      errors.New("1 row(s) failed"),
		NumRows:  2,
	}
	wr, err := CreateWorkerResult(value, jobLog)
	require.NoError(t, err)
	data, err := sonic.Marshal(wr)
	require.NoError(t, err)

	var decoded WorkerResult
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, results.ResultTypeAnnotation, decoded.ResultType)
	assert.Equal(t, "w1", decoded.JobLog.WorkerID)
	assert.Equal(t, 2*time.Second, decoded.JobLog.TimeSpent())
	assert.EqualError(t, decoded.JobLog.Err, "1 row(s) failed")

	ans, err := DeserializeAnnotationResult(&decoded)
	require.NoError(t, err)
	require.Len(t, ans.Rows, 2)
	assert.Equal(t, rec, ans.Rows[0].Record)
	assert.Equal(t, "parse failed", ans.Rows[1].Error)
	assert.Equal(t, 1, ans.NumFailures())
}

func TestWorkerResultError(t *testing.T) {
	wr, err := CreateWorkerResult(
		&results.ErrorResult{Func: FuncAnnotate, Error: "worker panicked"}, results.JobLog{})
	require.NoError(t, err)
	_, err = DeserializeAnnotationResult(wr)
	assert.EqualError(t, err, "worker panicked")
}

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("morph", "думала")
	assert.True(t, strings.HasPrefix(k1, "clausefeatCache:morph:"))
	assert.Equal(t, k1, CacheKey("morph", "думала"))
	assert.NotEqual(t, k1, CacheKey("morph", "думал"))
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{Host: "localhost"}
	require.NoError(t, conf.ValidateAndDefaults("redis"))
	assert.Equal(t, 6379, conf.Port)
	assert.Equal(t, 60, conf.QueryAnswerTimeoutSecs)
	assert.Equal(t, "localhost:6379", conf.ServerInfo())

	assert.Error(t, (&Conf{}).ValidateAndDefaults("redis"))
}
