// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
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
	"clausefeat/collab"
	"clausefeat/engine"
	"clausefeat/monitoring"
	"clausefeat/rdb"
	"clausefeat/worker"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltListenPort             = 8080
	dfltTimeZone               = "Europe/Prague"
	dfltLogLevel               = logging.LogLevel("info")
	dfltMaxBatchRows           = 1000
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string               `json:"listenAddress"`
	PublicURL              string               `json:"publicUrl"`
	ListenPort             int                  `json:"listenPort"`
	ServerReadTimeoutSecs  int                  `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                  `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string             `json:"corsAllowedOrigins"`
	Redis                  *rdb.Conf            `json:"redis"`
	Parser                 *collab.ParserConf   `json:"parser"`
	Analyzer               *collab.AnalyzerConf `json:"analyzer"`
	Annotation             *engine.Conf         `json:"annotation"`
	Batch                  *worker.BatchConf    `json:"batch"`
	MaxBatchRows           int                  `json:"maxBatchRows"`
	ArchivePath            string               `json:"archivePath"`
	Monitoring             *monitoring.Conf     `json:"monitoring"`
	LogFile                string               `json:"logFile"`
	LogLevel               logging.LogLevel     `json:"logLevel"`
	TimeZone               string               `json:"timeZone"`
	AuthHeaderName         string               `json:"authHeaderName"`
	AuthTokens             []string             `json:"authTokens"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel.IsDebugMode()
}

// Logging returns a logging setup for the provided log file path
// (empty path means stderr). A missing level falls back to the default.
func (conf *Conf) Logging(path string) logging.LoggingConf {
	level := conf.LogLevel
	if level == "" {
		level = dfltLogLevel
	}
	return logging.LoggingConf{
		Path:  path,
		Level: level,
	}
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call c.Validate()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = sonic.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

// Validate checks the configuration and fills in default values
// of missing items. The Redis section is required only by the server
// and the worker (requireRedis).
func (conf *Conf) Validate(requireRedis bool) error {
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s", conf.ListenAddress)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.MaxBatchRows == 0 {
		conf.MaxBatchRows = dfltMaxBatchRows
	}
	if conf.LogLevel == "" {
		conf.LogLevel = dfltLogLevel
	}
	if !conf.LogLevel.IsValid() {
		return fmt.Errorf("invalid logLevel: %s", conf.LogLevel)
	}
	if requireRedis {
		if err := conf.Redis.ValidateAndDefaults("redis"); err != nil {
			return err
		}
	}
	if err := conf.Parser.ValidateAndDefaults("parser"); err != nil {
		return err
	}
	if conf.Analyzer != nil {
		if err := conf.Analyzer.ValidateAndDefaults("analyzer"); err != nil {
			return err
		}

	} else {
		log.Warn().Msg("analyzer not configured, only parser tags will be used")
	}
	if conf.Annotation == nil {
		conf.Annotation = &engine.Conf{}
	}
	if err := conf.Annotation.ValidateAndDefaults("annotation"); err != nil {
		return err
	}
	if conf.Batch == nil {
		conf.Batch = &worker.BatchConf{}
	}
	if err := conf.Batch.ValidateAndDefaults("batch"); err != nil {
		return err
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

func ValidateAndDefaults(conf *Conf, requireRedis bool) {
	if err := conf.Validate(requireRedis); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
