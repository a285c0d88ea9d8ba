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
)

const (
	RuleAgreement = "agreement"
	RuleSecondary = "secondary"
	RulePrimary   = "primary"
	RuleUnknown   = "unknown"
)

type featureValue interface {
	~int
	IsKnown() bool
}

// MergeRule decides a feature value from the primary (parser) and
// the secondary (morphological analyzer) source. If the rule
// does not apply, ok is false and the next rule in a chain is tried.
type MergeRule[T featureValue] struct {
	Name  string
	Apply func(primary, secondary T) (value T, ok bool)
}

// AgreementRule applies when both sources know the value and agree on it.
func AgreementRule[T featureValue]() MergeRule[T] {
	return MergeRule[T]{
		Name: RuleAgreement,
		Apply: func(primary, secondary T) (T, bool) {
			return primary, primary.IsKnown() && primary == secondary
		},
	}
}

// SecondaryRule prefers the morphological analyzer whenever
// it knows the value (including a disagreement with the parser).
func SecondaryRule[T featureValue]() MergeRule[T] {
	return MergeRule[T]{
		Name: RuleSecondary,
		Apply: func(primary, secondary T) (T, bool) {
			return secondary, secondary.IsKnown()
		},
	}
}

// PrimaryRule uses the parser's value as a fallback.
func PrimaryRule[T featureValue]() MergeRule[T] {
	return MergeRule[T]{
		Name: RulePrimary,
		Apply: func(primary, secondary T) (T, bool) {
			return primary, primary.IsKnown()
		},
	}
}

// MergeChain is an ordered list of rules. The first applicable rule wins.
type MergeChain[T featureValue] []MergeRule[T]

// Merge returns the resolved value along with the name of the rule
// which produced it. If no rule applies, the zero (unknown) value
// is returned.
func (ch MergeChain[T]) Merge(primary, secondary T) (T, string) {
	for _, rule := range ch {
		if v, ok := rule.Apply(primary, secondary); ok {
			return v, rule.Name
		}
	}
	var unknown T
	return unknown, RuleUnknown
}

func defaultChain[T featureValue]() MergeChain[T] {
	return MergeChain[T]{AgreementRule[T](), SecondaryRule[T](), PrimaryRule[T]()}
}

// ---------------------------

// Resolver reconciles features reported by the syntactic parser
// with the ones reported by the morphological analyzer. It is
// stateless and safe for concurrent use.
type Resolver struct {
	Tense  MergeChain[morph.Tense]
	Aspect MergeChain[morph.Aspect]
	Person MergeChain[morph.Person]
	Number MergeChain[morph.Number]
}

// Resolve returns features of the token. The secondary reading is
// selected from candidates by matching the token's part of speech.
// Missing candidates leave the parser's features as the only source.
func (r *Resolver) Resolve(tok *syntax.Token, candidates []morph.Analysis) morph.FeatureBundle {
	primary := morph.FromUDFeats(tok.Feats)
	var secondary morph.FeatureBundle
	if reading := morph.SelectReading(candidates, tok.UPOS); reading != nil {
		secondary = reading.Features()
	}
	return r.Merge(primary, secondary)
}

func (r *Resolver) Merge(primary, secondary morph.FeatureBundle) morph.FeatureBundle {
	var ans morph.FeatureBundle
	ans.Tense, _ = r.Tense.Merge(primary.Tense, secondary.Tense)
	ans.Aspect, _ = r.Aspect.Merge(primary.Aspect, secondary.Aspect)
	ans.Person, _ = r.Person.Merge(primary.Person, secondary.Person)
	ans.Number, _ = r.Number.Merge(primary.Number, secondary.Number)
	return ans
}

// NewResolver creates a resolver where each feature is resolved
// by the chain agreement -> secondary -> primary.
func NewResolver() *Resolver {
	return &Resolver{
		Tense:  defaultChain[morph.Tense](),
		Aspect: defaultChain[morph.Aspect](),
		Person: defaultChain[morph.Person](),
		Number: defaultChain[morph.Number](),
	}
}
