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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
)

var (
	ErrMissingColumn = errors.New("missing required column")
)

type columnMap map[string]int

func (cm columnMap) value(record []string, col string) string {
	idx, ok := cm[strings.ToLower(col)]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func newColumnMap(header []string) (columnMap, error) {
	ans := make(columnMap)
	for i, h := range header {
		ans[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{ColVerb, ColTarget} {
		if _, ok := ans[strings.ToLower(required)]; !ok {
			return nil, fmt.Errorf("%w `%s`", ErrMissingColumn, required)
		}
	}
	return ans, nil
}

func readDelimited(r io.Reader, delim rune) ([]engine.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	header, err := reader.Read()
	if err == io.EOF {
		return []engine.Row{}, nil

	} else if err != nil {
		return nil, fmt.Errorf("failed to read table header: %w", err)
	}
	cols, err := newColumnMap(header)
	if err != nil {
		return nil, err
	}
	ans := make([]engine.Row, 0, 100)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break

		} else if err != nil {
			return nil, fmt.Errorf("failed to read table row %d: %w", len(ans)+1, err)
		}
		ans = append(ans, engine.Row{
			Source:      cols.value(record, ColSource),
			Verb:        cols.value(record, ColVerb),
			Embedding:   cols.value(record, ColEmbedding),
			PreContext:  cols.value(record, ColPreContext),
			Target:      cols.value(record, ColTarget),
			PostContext: cols.value(record, ColPostContext),
		})
	}
	return ans, nil
}

func readJSONLines(r io.Reader) ([]engine.Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	ans := make([]engine.Row, 0, 100)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var row engine.Row
		if err := sonic.UnmarshalString(line, &row); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNum, err)
		}
		ans = append(ans, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read JSON lines: %w", err)
	}
	return ans, nil
}

// ReadRows reads all input rows. Delimited formats must contain
// a header with at least the Verb and Target columns (column names
// are case insensitive, unknown columns are ignored).
func ReadRows(r io.Reader, format Format) ([]engine.Row, error) {
	switch format {
	case FormatCSV, FormatTSV:
		return readDelimited(r, format.Delimiter())
	case FormatJSONL:
		return readJSONLines(r)
	}
	return nil, format.Validate()
}
