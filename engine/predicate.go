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
	"clausefeat/syntax"
	"fmt"
)

type Role int

const (
	RoleMain Role = iota
	RoleSubordinate
)

func (r Role) String() string {
	switch r {
	case RoleMain:
		return "main"
	case RoleSubordinate:
		return "subordinate"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(data []byte) error {
	switch string(data) {
	case "main":
		*r = RoleMain
	case "subordinate":
		*r = RoleSubordinate
	default:
		return fmt.Errorf("invalid clause role `%s`", string(data))
	}
	return nil
}

// PredicateRef identifies a clause predicate. Strategy names
// the locator strategy which found the predicate.
type PredicateRef struct {
	Token    *syntax.Token
	Role     Role
	Strategy string
}

const (
	ConjStructural = "structural"
	ConjLexical    = "lexical"
)

// Conjunction links the main and the subordinate clause. A nil
// Conjunction (or one with a nil Token) stands for asyndetic
// subordination.
type Conjunction struct {
	Token  *syntax.Token
	Source string
}

// Lemma returns the conjunction lemma as written to the output
// (with a fallback to the surface form for tokens without a lemma).
func (c *Conjunction) Lemma() string {
	if c == nil || c.Token == nil {
		return morph.UnknownValue
	}
	if c.Token.Lemma != "" {
		return NormalizeLemma(c.Token.Lemma)
	}
	return NormalizeLemma(c.Token.Text)
}
