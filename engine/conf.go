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

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

var (
	dfltConjunctions = []string{"что", "чтобы", "будто", "но", "как", "какой", "когда"}

	dfltNegationLemmas = []string{"не"}

	dfltSubjectRelations = []string{"nsubj", "nsubj:pass", "csubj", "csubj:pass"}

	dfltComplementRelations = []string{"ccomp", "xcomp", "conj"}

	dfltAdjunctRelations = []string{"advcl", "acl", "parataxis"}

	dfltNominalRelations = []string{"obj", "obl"}

	dfltNominalPOS = []string{"NOUN", "ADJ"}

	dfltObliqueRelations = []string{"obl"}

	dfltClausalRelations = []string{"ccomp", "advcl", "xcomp", "parataxis", "conj", "acl"}
)

// Conf configures the annotation engine. All the lists are closed
// sets injected into the respective components. Relation labels
// without a subtype match any subtype (`acl` matches `acl:relcl`).
type Conf struct {

	// LexiconPath is an optional YAML file with conjunctions and negation
	// lemmas. If set, its non-empty lists replace the ones configured here.
	LexiconPath string `json:"lexiconPath"`

	Conjunctions   []string `json:"conjunctions"`
	NegationLemmas []string `json:"negationLemmas"`

	SubjectRelations []string `json:"subjectRelations"`

	// ComplementRelations, AdjunctRelations and NominalRelations are
	// dependency relations (of the main predicate's dependents)
	// searched - in this order - for a subordinate predicate.
	ComplementRelations []string `json:"complementRelations"`
	AdjunctRelations    []string `json:"adjunctRelations"`
	NominalRelations    []string `json:"nominalRelations"`

	// NominalPOS limits the NominalRelations search to verbless clauses
	// headed by one of the parts of speech.
	NominalPOS []string `json:"nominalPos"`

	// ObliqueRelations are searched for a nested clausal dependent
	ObliqueRelations []string `json:"obliqueRelations"`

	// ClausalRelations denote clause-introducing edges. They rank main
	// predicate candidates and are used by the oblique search.
	ClausalRelations []string `json:"clausalRelations"`

	// InheritInfinitiveSubject makes an infinitival subordinate predicate
	// without its own subject copy person and number of the main predicate
	InheritInfinitiveSubject bool `json:"inheritInfinitiveSubject"`
}

// DefaultConf returns a configuration with all the built-in lists.
func DefaultConf() Conf {
	return Conf{
		Conjunctions:        dfltConjunctions,
		NegationLemmas:      dfltNegationLemmas,
		SubjectRelations:    dfltSubjectRelations,
		ComplementRelations: dfltComplementRelations,
		AdjunctRelations:    dfltAdjunctRelations,
		NominalRelations:    dfltNominalRelations,
		NominalPOS:          dfltNominalPOS,
		ObliqueRelations:    dfltObliqueRelations,
		ClausalRelations:    dfltClausalRelations,
	}
}

func defaultList(confContext, name string, val *[]string, dflt []string) {
	if len(*val) == 0 {
		*val = dflt
		log.Warn().
			Strs("value", dflt).
			Msgf("`%s.%s` not set, using default", confContext, name)
	}
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.LexiconPath != "" {
		isFile, err := fs.IsFile(conf.LexiconPath)
		if err != nil {
			return fmt.Errorf("failed to test `%s.lexiconPath`: %w", confContext, err)
		}
		if !isFile {
			return fmt.Errorf("the `%s.lexiconPath` does not point to a file", confContext)
		}
		lex, err := LoadLexiconFile(conf.LexiconPath)
		if err != nil {
			return fmt.Errorf("invalid `%s.lexiconPath`: %w", confContext, err)
		}
		if len(lex.Conjunctions) > 0 {
			conf.Conjunctions = lex.Conjunctions
		}
		if len(lex.NegationLemmas) > 0 {
			conf.NegationLemmas = lex.NegationLemmas
		}
		log.Info().
			Str("path", conf.LexiconPath).
			Int("conjunctions", len(lex.Conjunctions)).
			Int("negation", len(lex.NegationLemmas)).
			Msg("loaded lexicon file")
	}
	defaultList(confContext, "conjunctions", &conf.Conjunctions, dfltConjunctions)
	defaultList(confContext, "negationLemmas", &conf.NegationLemmas, dfltNegationLemmas)
	defaultList(confContext, "subjectRelations", &conf.SubjectRelations, dfltSubjectRelations)
	defaultList(confContext, "complementRelations", &conf.ComplementRelations, dfltComplementRelations)
	defaultList(confContext, "adjunctRelations", &conf.AdjunctRelations, dfltAdjunctRelations)
	defaultList(confContext, "nominalRelations", &conf.NominalRelations, dfltNominalRelations)
	defaultList(confContext, "nominalPos", &conf.NominalPOS, dfltNominalPOS)
	defaultList(confContext, "obliqueRelations", &conf.ObliqueRelations, dfltObliqueRelations)
	defaultList(confContext, "clausalRelations", &conf.ClausalRelations, dfltClausalRelations)
	return nil
}
