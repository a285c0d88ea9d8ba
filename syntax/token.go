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

package syntax

import (
	"slices"
	"strings"
)

// Token is a word of a parsed sentence as produced by a UD parser.
// Tokens are created by the parsing collaborator and never modified
// afterwards.
type Token struct {

	// ID is a 1-based position of the token within its sentence
	ID int `json:"id"`

	Text  string `json:"text"`
	Lemma string `json:"lemma"`

	// UPOS is a universal (coarse) part of speech
	UPOS string `json:"upos"`

	// XPOS is a language specific part of speech (optional)
	XPOS string `json:"xpos,omitempty"`

	// Feats contains UD morphological features (e.g. Tense=Past)
	Feats map[string]string `json:"feats,omitempty"`

	// Head is an ID of the governing token, 0 for the sentence root
	Head int `json:"head"`

	Deprel string `json:"deprel"`
}

func (t *Token) Feat(name string) string {
	return t.Feats[name]
}

func (t *Token) IsRoot() bool {
	return t.Head == 0
}

// BaseDeprel returns the universal part of the dependency relation
// (e.g. `acl` for `acl:relcl`).
func (t *Token) BaseDeprel() string {
	rel, _, _ := strings.Cut(t.Deprel, ":")
	return rel
}

// HasDeprel tests the universal part of the relation against
// the provided labels. A label containing a subtype (e.g. `nsubj:pass`)
// must match exactly.
func (t *Token) HasDeprel(labels ...string) bool {
	base := t.BaseDeprel()
	for _, l := range labels {
		if strings.Contains(l, ":") {
			if l == t.Deprel {
				return true
			}

		} else if l == base {
			return true
		}
	}
	return false
}

func (t *Token) HasUPOS(tags ...string) bool {
	return slices.Contains(tags, t.UPOS)
}

// ParseUDFeats parses a CoNLL-U FEATS column value
// (e.g. `Aspect=Imp|Mood=Ind|Number=Sing`). The `_` placeholder
// produces nil.
func ParseUDFeats(s string) map[string]string {
	if s == "" || s == "_" {
		return nil
	}
	ans := make(map[string]string)
	for _, item := range strings.Split(s, "|") {
		k, v, ok := strings.Cut(item, "=")
		if !ok || k == "" {
			continue
		}
		ans[k] = v
	}
	return ans
}
