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
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	dfltPort                   = 6379
	dfltQueryAnswerTimeoutSecs = 60
)

type Conf struct {
	Host                   string `json:"host"`
	Port                   int    `json:"port"`
	DB                     int    `json:"db"`
	Password               string `json:"password"`
	ChannelQuery           string `json:"channelQuery"`
	ChannelResultPrefix    string `json:"channelResultPrefix"`
	QueryAnswerTimeoutSecs int    `json:"queryAnswerTimeoutSecs"`
}

func (conf *Conf) ServerInfo() string {
	return fmt.Sprintf("%s:%d", conf.Host, conf.Port)
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.Host == "" {
		return fmt.Errorf("missing `%s.host`", confContext)
	}
	if conf.Port == 0 {
		conf.Port = dfltPort
		log.Warn().
			Int("value", dfltPort).
			Msgf("`%s.port` not set, using default", confContext)
	}
	if conf.QueryAnswerTimeoutSecs == 0 {
		conf.QueryAnswerTimeoutSecs = dfltQueryAnswerTimeoutSecs
		log.Warn().
			Int("value", dfltQueryAnswerTimeoutSecs).
			Msgf("`%s.queryAnswerTimeoutSecs` not set, using default", confContext)
	}
	return nil
}
