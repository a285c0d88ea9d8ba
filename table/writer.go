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

package table

import (
	"bufio"
	"clausefeat/engine"
	"clausefeat/results"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// Writer writes annotated rows to an output table.
// Close must be called to flush buffered data.
type Writer interface {
	Write(row results.AnnotatedRow) error
	Close() error
}

// RecordToColumns converts a record to output column values
// ordered according to OutputHeader.
func RecordToColumns(rec engine.AnnotationRecord) []string {
	return []string{
		rec.Source,
		rec.Verb,
		rec.Embedding,
		rec.PreContext,
		rec.Target,
		rec.PostContext,
		rec.Main.Tense.String(),
		rec.Main.Person.String(),
		rec.Main.Number.String(),
		rec.Main.Aspect.String(),
		rec.Sub.Tense.String(),
		rec.Sub.Person.String(),
		rec.Sub.Number.String(),
		rec.Sub.Aspect.String(),
		rec.Conjunction,
	}
}

// ----

type delimitedWriter struct {
	w             *csv.Writer
	headerWritten bool
}

func (dw *delimitedWriter) Write(row results.AnnotatedRow) error {
	if !dw.headerWritten {
		if err := dw.w.Write(OutputHeader); err != nil {
			return fmt.Errorf("failed to write table header: %w", err)
		}
		dw.headerWritten = true
	}
	if err := dw.w.Write(RecordToColumns(row.Record)); err != nil {
		return fmt.Errorf("failed to write table row: %w", err)
	}
	return nil
}

func (dw *delimitedWriter) Close() error {
	if !dw.headerWritten {
		if err := dw.w.Write(OutputHeader); err != nil {
			return fmt.Errorf("failed to write table header: %w", err)
		}
		dw.headerWritten = true
	}
	dw.w.Flush()
	return dw.w.Error()
}

// ----

type jsonLinesWriter struct {
	w *bufio.Writer
}

func (jw *jsonLinesWriter) Write(row results.AnnotatedRow) error {
	data, err := sonic.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to serialize row: %w", err)
	}
	if _, err := jw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return jw.w.WriteByte('\n')
}

func (jw *jsonLinesWriter) Close() error {
	return jw.w.Flush()
}

// NewWriter creates an output table writer. Delimited formats
// contain only the record columns (row errors are reported
// elsewhere), JSON lines contain the records along with errors.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatCSV, FormatTSV:
		cw := csv.NewWriter(w)
		cw.Comma = format.Delimiter()
		return &delimitedWriter{w: cw}, nil
	case FormatJSONL:
		return &jsonLinesWriter{w: bufio.NewWriter(w)}, nil
	}
	return nil, format.Validate()
}
