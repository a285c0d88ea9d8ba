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
	"clausefeat/syntax"
)

// SubjectResolver finds grammatical subjects of predicates.
type SubjectResolver struct {
	relations []string
}

// FindSubject returns the first direct dependent of pred attached
// by one of the subject relations. For elided subjects, nil is
// returned.
func (sr *SubjectResolver) FindSubject(pred *syntax.Token, sent *syntax.ParseResult) *syntax.Token {
	if pred == nil {
		return nil
	}
	for _, ch := range sent.Children(pred) {
		if ch.HasDeprel(sr.relations...) {
			return ch
		}
	}
	return nil
}

// IsCoordinated tests whether the subject is coordinated with other
// nominals (Маша и Петя думали...).
func (sr *SubjectResolver) IsCoordinated(subj *syntax.Token, sent *syntax.ParseResult) bool {
	for _, ch := range sent.Children(subj) {
		if ch.HasDeprel("conj") {
			return true
		}
	}
	return false
}

func NewSubjectResolver(relations []string) *SubjectResolver {
	return &SubjectResolver{relations: relations}
}
