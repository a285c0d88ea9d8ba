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
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatJSONL Format = "jsonl"
)

func (f Format) Delimiter() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

func (f Format) Validate() error {
	switch f {
	case FormatCSV, FormatTSV, FormatJSONL:
		return nil
	}
	return fmt.Errorf("unsupported table format `%s`", f)
}

// FormatFromPath determines table format from a file extension
// (.csv, .tsv, .tab, .jsonl, .ndjson).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("cannot determine table format of `%s`", path)
}

// Input columns
const (
	ColSource      = "Source"
	ColVerb        = "Verb"
	ColEmbedding   = "Embedding"
	ColPreContext  = "PreContext"
	ColTarget      = "Target"
	ColPostContext = "PostContext"
)

// OutputHeader lists output table columns in their order
var OutputHeader = []string{
	ColSource, ColVerb, ColEmbedding, ColPreContext, ColTarget, ColPostContext,
	"MatTense", "MatSubjPers", "MatSubjNum", "MatAspect",
	"SubTense", "SubSubjPers", "SubSubjNum", "SubAspect",
	"Conjunction",
}
