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

package cnf

import (
	"testing"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndValidate(t *testing.T) {
	conf := LoadConfig("testdata/conf.json")
	require.NoError(t, conf.Validate(true))
	assert.Equal(t, 8090, conf.ListenPort)
	assert.Equal(t, "http://127.0.0.1", conf.PublicURL)
	assert.Equal(t, 6379, conf.Redis.Port)
	assert.Equal(t, 2, conf.Redis.DB)
	assert.NotEmpty(t, conf.Parser.Model)
	assert.Equal(t, -1, conf.Analyzer.CacheTTLSecs)
	assert.Equal(t, []string{"не", "нет"}, conf.Annotation.NegationLemmas)
	assert.True(t, conf.Annotation.InheritInfinitiveSubject)
	assert.NotEmpty(t, conf.Annotation.Conjunctions)
	assert.Equal(t, 8, conf.Batch.NumWorkers)
	assert.Equal(t, dfltMaxBatchRows, conf.MaxBatchRows)
	assert.Equal(t, dfltTimeZone, conf.TimeZone)
	assert.NotNil(t, conf.TimezoneLocation())
	assert.True(t, conf.IsDebugMode())
	assert.Contains(t, conf.GetSourcePath(), "testdata")
}

func TestValidateRequiresParser(t *testing.T) {
	conf := &Conf{}
	assert.Error(t, conf.Validate(false))
}

func TestValidateRedisOnlyWhenRequired(t *testing.T) {
	conf := LoadConfig("testdata/conf.json")
	conf.Redis = nil
	assert.NoError(t, conf.Validate(false))
	assert.Error(t, conf.Validate(true))
}

func TestValidateInvalidValues(t *testing.T) {
	conf := LoadConfig("testdata/conf.json")
	conf.LogLevel = "verbose"
	assert.Error(t, conf.Validate(false))

	conf = LoadConfig("testdata/conf.json")
	conf.TimeZone = "Mars/Olympus"
	assert.Error(t, conf.Validate(false))
}

func TestLoggingConf(t *testing.T) {
	conf := &Conf{}
	lconf := conf.Logging("/var/log/clausefeat/worker.log")
	assert.Equal(t, "/var/log/clausefeat/worker.log", lconf.Path)
	assert.Equal(t, dfltLogLevel, lconf.Level)
	assert.True(t, lconf.Level.IsValid())

	conf.LogLevel = "debug"
	assert.Equal(t, logging.LogLevel("debug"), conf.Logging("").Level)
}
