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
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "clausefeatCache"
)

// CacheKey creates a Redis key for a cached value identified
// by a namespace (e.g. `morph`) and an arbitrary string.
func CacheKey(namespace, key string) string {
	hashKey := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s:%s:%s", cacheKeyPrefix, namespace, hex.EncodeToString(hashKey[:]))
}

// GetCached returns a cached value. In case the value is not
// cached, false is returned along with a nil error.
func (a *Adapter) GetCached(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := a.c.Get(ctx, key)
	if cmd.Err() == redis.Nil {
		return nil, false, nil

	} else if cmd.Err() != nil {
		return nil, false, fmt.Errorf("failed to get cached value: %w", cmd.Err())
	}
	data, err := cmd.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached value: %w", err)
	}
	return data, true, nil
}

func (a *Adapter) SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := a.c.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache value: %w", err)
	}
	return nil
}
