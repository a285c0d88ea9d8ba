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

package engine

import (
	"clausefeat/morph"
)

const (
	EmbeddingNegation = "negation"
	EmbeddingNone     = "no"
)

// Row is an input record. Embedding is passed through from
// the input only until the row is annotated (the annotator computes
// it from the main predicate).
type Row struct {
	Source      string `json:"source"`
	Verb        string `json:"verb"`
	Embedding   string `json:"embedding,omitempty"`
	PreContext  string `json:"preContext"`
	Target      string `json:"target"`
	PostContext string `json:"postContext"`
}

// AnnotationRecord is an annotated row. Features which could not
// be determined are unknown (never guessed). Unresolved lists
// clause roles whose predicate could not be located.
type AnnotationRecord struct {
	Source      string              `json:"source"`
	Verb        string              `json:"verb"`
	Embedding   string              `json:"embedding"`
	PreContext  string              `json:"preContext"`
	Target      string              `json:"target"`
	PostContext string              `json:"postContext"`
	Main        morph.FeatureBundle `json:"main"`
	Sub         morph.FeatureBundle `json:"sub"`
	Conjunction string              `json:"conjunction"`
	Unresolved  []Role              `json:"unresolved,omitempty"`
}

// IsResolved tests whether both the main and the subordinate
// predicates were found.
func (rec AnnotationRecord) IsResolved() bool {
	return len(rec.Unresolved) == 0
}

// UnknownRecord creates a record with all the output columns unknown.
func UnknownRecord(row Row) AnnotationRecord {
	return AnnotationRecord{
		Source:      row.Source,
		Verb:        row.Verb,
		Embedding:   morph.UnknownValue,
		PreContext:  row.PreContext,
		Target:      row.Target,
		PostContext: row.PostContext,
		Conjunction: morph.UnknownValue,
		Unresolved:  []Role{RoleMain, RoleSubordinate},
	}
}
