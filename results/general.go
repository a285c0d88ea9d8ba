// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
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

package results

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

const (
	ResultTypeAnnotation ResultType = "annotation"
	ResultTypeError      ResultType = "error"
)

type SerializableResult interface {
	Type() ResultType
	Err() error
}

// JobLog describes a single job processed by a worker. It is
// sent back along with the job result so the API server can
// keep track of workers' load.
type JobLog struct {
	WorkerID string
	Func     string
	Begin    time.Time
	End      time.Time
	Err      error

	// NumRows is the number of rows processed within the job
	NumRows int

	// NumFailures is the number of rows which could not be parsed
	NumFailures int
}

func (jl JobLog) TimeSpent() time.Duration {
	return jl.End.Sub(jl.Begin)
}

type jobLogJSON struct {
	WorkerID    string    `json:"workerId"`
	Func        string    `json:"func"`
	Begin       time.Time `json:"begin"`
	End         time.Time `json:"end"`
	Err         string    `json:"error,omitempty"`
	NumRows     int       `json:"numRows"`
	NumFailures int       `json:"numFailures"`
}

func (jl JobLog) MarshalJSON() ([]byte, error) {
	tmp := jobLogJSON{
		WorkerID:    jl.WorkerID,
		Func:        jl.Func,
		Begin:       jl.Begin,
		End:         jl.End,
		NumRows:     jl.NumRows,
		NumFailures: jl.NumFailures,
	}
	if jl.Err != nil {
		tmp.Err = jl.Err.Error()
	}
	return sonic.Marshal(tmp)
}

func (jl *JobLog) UnmarshalJSON(data []byte) error {
	var tmp jobLogJSON
	if err := sonic.Unmarshal(data, &tmp); err != nil {
		return err
	}
	jl.WorkerID = tmp.WorkerID
	jl.Func = tmp.Func
	jl.Begin = tmp.Begin
	jl.End = tmp.End
	jl.NumRows = tmp.NumRows
	jl.NumFailures = tmp.NumFailures
	jl.Err = nil
	if tmp.Err != "" {
		jl.Err = errors.New(tmp.Err)
	}
	return nil
}

func (jl *JobLog) ToJSON() (string, error) {
	ans, err := sonic.Marshal(jl)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

// ----

type ErrorResult struct {
	Func  string `json:"func"`
	Error string `json:"error"`
}

func (res *ErrorResult) Err() error {
	if res.Error != "" {
		return errors.New(res.Error)
	}
	return nil
}

func (res *ErrorResult) Type() ResultType {
	return ResultTypeError
}
