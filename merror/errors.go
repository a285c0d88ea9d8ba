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

package merror

import (
	"fmt"

	"github.com/bytedance/sonic"
)

func marshalMsg(msg string) ([]byte, error) {
	if msg != "" {
		return sonic.Marshal(msg)
	}
	return sonic.Marshal(nil)
}

type InputError struct {
	Msg string
}

func (err InputError) Error() string {
	return err.Msg
}

func (err InputError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ----------------------------

type InternalError struct {
	Msg string
}

func (err InternalError) Error() string {
	return err.Msg
}

func (err InternalError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ---------------------------

type RecoveredError struct {
	Msg string
}

func (err RecoveredError) Error() string {
	return err.Msg
}

func (err RecoveredError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ---------------------------

type TimeoutError struct {
	Msg string
}

func (err TimeoutError) Error() string {
	return err.Msg
}

func (err TimeoutError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ---------------------------

// ParseFailure reports that the syntactic parser could not provide
// a usable parse of a row's target text (service unavailable, timeout,
// malformed output). The row itself is still annotated, with all
// features unknown.
type ParseFailure struct {
	Msg   string
	Cause error
}

func (err ParseFailure) Error() string {
	if err.Cause != nil {
		return fmt.Sprintf("%s: %s", err.Msg, err.Cause)
	}
	return err.Msg
}

func (err ParseFailure) Unwrap() error {
	return err.Cause
}

func (err ParseFailure) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Error())
}

// ---------------------------

// IncompleteAnalysis reports that morphological analysis of a row
// was interrupted (e.g. by the row deadline). The row is annotated
// using the parser tags only.
type IncompleteAnalysis struct {
	Msg   string
	Cause error
}

func (err IncompleteAnalysis) Error() string {
	if err.Cause != nil {
		return fmt.Sprintf("%s: %s", err.Msg, err.Cause)
	}
	return err.Msg
}

func (err IncompleteAnalysis) Unwrap() error {
	return err.Cause
}

func (err IncompleteAnalysis) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Error())
}

// -----------------

func PanicValueToErr(v any) (err error) {
	switch tr := v.(type) {
	case error:
		err = fmt.Errorf("recovered panic: %w", tr)
	case string:
		err = fmt.Errorf("recovered panic: %s", tr)
	default:
		err = fmt.Errorf("recovered panic from an error of type %T", v)
	}
	return
}
