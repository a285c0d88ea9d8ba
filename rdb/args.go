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
	"fmt"

	"github.com/bytedance/sonic"
)

const (
	FuncAnnotate = "annotate"
)

type AnnotateArgs struct {
	Rows []engine.Row `json:"rows"`
}

func NewAnnotateQuery(rows []engine.Row) (Query, error) {
	args, err := sonic.Marshal(AnnotateArgs{Rows: rows})
	if err != nil {
		return Query{}, fmt.Errorf("failed to create annotate query: %w", err)
	}
	return Query{Func: FuncAnnotate, Args: args}, nil
}
