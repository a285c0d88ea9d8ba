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

package collab

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	dfltUDPipeModel         = "russian-syntagrus-ud-2.12-230717"
	dfltRequestTimeoutSecs  = 30
	dfltIdleConnTimeoutSecs = 60
	dfltCacheTTLSecs        = 3600 * 24
)

type ParserConf struct {
	URL                 string `json:"url"`
	Model               string `json:"model"`
	RequestTimeoutSecs  int    `json:"requestTimeoutSecs"`
	IdleConnTimeoutSecs int    `json:"idleConnTimeoutSecs"`
}

func (conf *ParserConf) RequestTimeout() time.Duration {
	return time.Duration(conf.RequestTimeoutSecs) * time.Second
}

func (conf *ParserConf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.URL == "" {
		return fmt.Errorf("missing `%s.url`", confContext)
	}
	if conf.Model == "" {
		conf.Model = dfltUDPipeModel
		log.Warn().
			Str("value", dfltUDPipeModel).
			Msgf("`%s.model` not set, using default", confContext)
	}
	if conf.RequestTimeoutSecs == 0 {
		conf.RequestTimeoutSecs = dfltRequestTimeoutSecs
		log.Warn().
			Int("value", dfltRequestTimeoutSecs).
			Msgf("`%s.requestTimeoutSecs` not set, using default", confContext)
	}
	if conf.IdleConnTimeoutSecs == 0 {
		conf.IdleConnTimeoutSecs = dfltIdleConnTimeoutSecs
	}
	return nil
}

// AnalyzerConf configures the morphological analyzer service.
// With CacheTTLSecs < 0, cached analyses never expire.
type AnalyzerConf struct {
	URL                 string `json:"url"`
	RequestTimeoutSecs  int    `json:"requestTimeoutSecs"`
	IdleConnTimeoutSecs int    `json:"idleConnTimeoutSecs"`
	CacheTTLSecs        int    `json:"cacheTtlSecs"`
}

func (conf *AnalyzerConf) CacheTTL() time.Duration {
	if conf.CacheTTLSecs < 0 {
		return 0
	}
	return time.Duration(conf.CacheTTLSecs) * time.Second
}

func (conf *AnalyzerConf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.URL == "" {
		return fmt.Errorf("missing `%s.url`", confContext)
	}
	if conf.RequestTimeoutSecs == 0 {
		conf.RequestTimeoutSecs = dfltRequestTimeoutSecs
		log.Warn().
			Int("value", dfltRequestTimeoutSecs).
			Msgf("`%s.requestTimeoutSecs` not set, using default", confContext)
	}
	if conf.IdleConnTimeoutSecs == 0 {
		conf.IdleConnTimeoutSecs = dfltIdleConnTimeoutSecs
	}
	if conf.CacheTTLSecs == 0 {
		conf.CacheTTLSecs = dfltCacheTTLSecs
	}
	return nil
}
