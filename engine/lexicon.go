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
	"fmt"
	"os"
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLemma brings a lemma (or a word form) into a form suitable
// for comparison: NFC, lower case and `ё` replaced by `е` (Russian
// texts use both spellings interchangeably).
func NormalizeLemma(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	// a Caser is stateful so we cannot share one among goroutines
	s = cases.Lower(language.Russian).String(s)
	return strings.ReplaceAll(s, "ё", "е")
}

// Lexicon is a normalized closed list of lemmas.
type Lexicon []string

func NewLexicon(items []string) Lexicon {
	ans := make(Lexicon, 0, len(items))
	for _, item := range items {
		v := NormalizeLemma(item)
		if v != "" && !collections.SliceContains(ans, v) {
			ans = append(ans, v)
		}
	}
	return ans
}

// Contains tests whether the lemma (in any casing/spelling)
// is part of the lexicon.
func (lex Lexicon) Contains(lemma string) bool {
	return collections.SliceContains(lex, NormalizeLemma(lemma))
}

// LexiconFile is a YAML file with word lists overriding
// the built-in ones. Empty lists are ignored.
//
//	conjunctions: [что, чтобы, будто]
//	negation: [не]
type LexiconFile struct {
	Conjunctions   []string `yaml:"conjunctions"`
	NegationLemmas []string `yaml:"negation"`
}

func LoadLexiconFile(path string) (LexiconFile, error) {
	var ans LexiconFile
	data, err := os.ReadFile(path)
	if err != nil {
		return ans, fmt.Errorf("failed to load lexicon file: %w", err)
	}
	if err := yaml.Unmarshal(data, &ans); err != nil {
		return ans, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}
	return ans, nil
}
