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
	"clausefeat/engine"
	"clausefeat/morph"
	"clausefeat/rdb"
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

const (
	morphCacheNamespace = "morph"
)

// Cache is a key-value storage for serialized analyses
type Cache interface {
	GetCached(ctx context.Context, key string) ([]byte, bool, error)
	SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// CachedAnalyzer wraps an analyzer and stores its responses
// in a shared cache. A failing cache never fails the analysis,
// the inner analyzer is used instead.
type CachedAnalyzer struct {
	inner engine.Analyzer
	cache Cache
	ttl   time.Duration
}

func (ca *CachedAnalyzer) Analyze(ctx context.Context, word string) ([]morph.Analysis, error) {
	key := rdb.CacheKey(morphCacheNamespace, word)
	data, ok, err := ca.cache.GetCached(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("failed to read cached analyses")

	} else if ok {
		var ans []morph.Analysis
		if err := sonic.Unmarshal(data, &ans); err == nil {
			return ans, nil

		} else {
			log.Warn().Err(err).Str("word", word).Msg("invalid cached analyses, ignoring")
		}
	}
	ans, err := ca.inner.Analyze(ctx, word)
	if err != nil {
		return nil, err
	}
	data, err = sonic.Marshal(ans)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("failed to serialize analyses")
		return ans, nil
	}
	if err := ca.cache.SetCached(ctx, key, data, ca.ttl); err != nil {
		log.Warn().Err(err).Str("word", word).Msg("failed to cache analyses")
	}
	return ans, nil
}

func NewCachedAnalyzer(inner engine.Analyzer, cache Cache, ttl time.Duration) *CachedAnalyzer {
	return &CachedAnalyzer{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}
