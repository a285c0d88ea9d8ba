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
	"clausefeat/results"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// WorkerResult is a job result as transferred from a worker
// back to the API server.
type WorkerResult struct {
	ResultType results.ResultType `json:"resultType"`
	Value      json.RawMessage    `json:"value"`
	JobLog     results.JobLog     `json:"jobLog"`
}

func (wr *WorkerResult) AttachValue(value results.SerializableResult) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to attach value to WorkerResult: %w", err)
	}
	wr.Value = data
	wr.ResultType = value.Type()
	return nil
}

func CreateWorkerResult(value results.SerializableResult, jobLog results.JobLog) (*WorkerResult, error) {
	ans := &WorkerResult{JobLog: jobLog}
	if err := ans.AttachValue(value); err != nil {
		return nil, err
	}
	return ans, nil
}

// DeserializeAnnotationResult decodes the result value of the
// `annotate` job. A worker error is returned as an error.
func DeserializeAnnotationResult(wr *WorkerResult) (results.Annotation, error) {
	var ans results.Annotation
	switch wr.ResultType {
	case results.ResultTypeAnnotation:
		if err := sonic.Unmarshal(wr.Value, &ans); err != nil {
			return ans, fmt.Errorf("failed to deserialize annotation result: %w", err)
		}
		return ans, nil
	case results.ResultTypeError:
		var errRes results.ErrorResult
		if err := sonic.Unmarshal(wr.Value, &errRes); err != nil {
			return ans, fmt.Errorf("failed to deserialize error result: %w", err)
		}
		return ans, errRes.Err()
	}
	return ans, fmt.Errorf("unexpected result type `%s`", wr.ResultType)
}
