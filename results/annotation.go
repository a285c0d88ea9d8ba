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

package results

import (
	"clausefeat/engine"
	"errors"

	"github.com/bytedance/sonic"
)

// AnnotatedRow is an annotation of a single row. The record is
// always present; Error describes a row-level failure (typically
// a parser failure, in which case the record is entirely unknown).
type AnnotatedRow struct {
	Record engine.AnnotationRecord `json:"record"`
	Error  string                  `json:"error,omitempty"`
}

// Annotation is a result of the `annotate` job. Rows are in the order
// of the input rows.
type Annotation struct {
	Rows []AnnotatedRow

	// Error describes a job-level failure (e.g. invalid arguments)
	Error string
}

func (res *Annotation) Err() error {
	if res.Error != "" {
		return errors.New(res.Error)
	}
	return nil
}

func (res *Annotation) Type() ResultType {
	return ResultTypeAnnotation
}

func (res *Annotation) NumFailures() int {
	var ans int
	for _, row := range res.Rows {
		if row.Error != "" {
			ans++
		}
	}
	return ans
}

func (res *Annotation) MarshalJSON() ([]byte, error) {
	rows := res.Rows
	if rows == nil {
		rows = []AnnotatedRow{}
	}
	return sonic.Marshal(struct {
		Rows       []AnnotatedRow `json:"rows"`
		ResultType ResultType     `json:"resultType"`
		Error      string         `json:"error,omitempty"`
	}{
		Rows:       rows,
		ResultType: res.Type(),
		Error:      res.Error,
	})
}

func (res *Annotation) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Rows  []AnnotatedRow `json:"rows"`
		Error string         `json:"error"`
	}
	if err := sonic.Unmarshal(data, &tmp); err != nil {
		return err
	}
	res.Rows = tmp.Rows
	res.Error = tmp.Error
	return nil
}
