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
	"slices"
)

const (
	StrategyComplement         = "complement"
	StrategyAdjunct            = "adjunct"
	StrategyNominal            = "nominal"
	StrategyParataxisHead      = "parataxisHead"
	StrategyOblique            = "oblique"
	StrategyLexicalConjunction = "lexicalConjunction"
	StrategyFollowing          = "following"
)

// SubordinateStrategy is a single way of finding a subordinate
// predicate. Structural strategies inspect dependency edges and
// require the main predicate; lexical ones rely on linear order.
// Find may also return a conjunction token it has used
// as evidence.
type SubordinateStrategy struct {
	Name      string
	NeedsMain bool
	Find      func(sent *syntax.ParseResult, main *syntax.Token) (sub, conj *syntax.Token)
}

// Locator finds the main predicate, the subordinate predicate and
// the conjunction linking them. It holds only immutable configuration.
type Locator struct {
	conjunctions Lexicon
	clausalRels  []string
	strategies   []SubordinateStrategy
}

func (lc *Locator) Strategies() []SubordinateStrategy {
	return lc.strategies
}

func (lc *Locator) countClausalDependents(sent *syntax.ParseResult, tok *syntax.Token) int {
	var ans int
	for _, ch := range sent.Children(tok) {
		if ch.HasDeprel(lc.clausalRels...) {
			ans++
		}
	}
	return ans
}

// FindMain returns the token representing the verb lemma.
// A token matches if its lemma or its analyzer normal form (if
// provided in normalForms, keyed by token ID) equals the verb.
// Among multiple matches the one with more clausal dependents wins,
// then the one closer to the root, then the earlier one.
func (lc *Locator) FindMain(sent *syntax.ParseResult, verb string, normalForms map[int]string) *syntax.Token {
	target := NormalizeLemma(verb)
	if target == "" {
		return nil
	}
	var cands []*syntax.Token
	for i, tok := range sent.Tokens() {
		if NormalizeLemma(tok.Lemma) == target ||
			normalForms[tok.ID] != "" && NormalizeLemma(normalForms[tok.ID]) == target {
			cands = append(cands, &sent.Tokens()[i])
		}
	}
	if len(cands) == 0 {
		return nil
	}
	slices.SortStableFunc(cands, func(a, b *syntax.Token) int {
		if d := lc.countClausalDependents(sent, b) - lc.countClausalDependents(sent, a); d != 0 {
			return d
		}
		if d := sent.Depth(a) - sent.Depth(b); d != 0 {
			return d
		}
		return a.ID - b.ID
	})
	return cands[0]
}

// FindSubordinate tries the strategies in their order and returns
// the first subordinate predicate found. With main == nil, only
// the strategies not depending on the main predicate are tried.
func (lc *Locator) FindSubordinate(sent *syntax.ParseResult, main *syntax.Token) (*PredicateRef, *syntax.Token) {
	for _, strategy := range lc.strategies {
		if main == nil && strategy.NeedsMain {
			continue
		}
		sub, conj := strategy.Find(sent, main)
		if sub != nil && sub != main {
			return &PredicateRef{Token: sub, Role: RoleSubordinate, Strategy: strategy.Name}, conj
		}
	}
	return nil, nil
}

func (lc *Locator) isConjunction(tok *syntax.Token) bool {
	return tok.HasDeprel("mark") || lc.conjunctions.Contains(tok.Lemma)
}

// FindConjunction looks for the conjunction introducing sub.
// Structural evidence goes first: a `mark` dependent of sub or a
// subordinating conjunction dependent preceding it. Then the hint
// (a conjunction found by a lexical strategy) is used and finally
// the tokens between main and sub are scanned for a `mark` token
// or a lexicon conjunction.
func (lc *Locator) FindConjunction(
	sent *syntax.ParseResult,
	main, sub, hint *syntax.Token,
) *Conjunction {
	if sub == nil {
		return nil
	}
	children := sent.Children(sub)
	for _, ch := range children {
		if ch.HasDeprel("mark") {
			return &Conjunction{Token: ch, Source: ConjStructural}
		}
	}
	for _, ch := range children {
		if ch.HasUPOS("SCONJ") && ch.ID < sub.ID {
			return &Conjunction{Token: ch, Source: ConjStructural}
		}
	}
	if hint != nil {
		return &Conjunction{Token: hint, Source: ConjLexical}
	}
	if main == nil {
		return nil
	}
	between := sent.Between(main, sub)
	for i := range between {
		if lc.isConjunction(&between[i]) {
			return &Conjunction{Token: sent.Token(between[i].ID), Source: ConjLexical}
		}
	}
	return nil
}

// Locate finds all the clause elements within a sentence. Any of
// the returned values may be nil.
func (lc *Locator) Locate(
	sent *syntax.ParseResult,
	verb string,
	normalForms map[int]string,
) (main *PredicateRef, sub *PredicateRef, conj *Conjunction) {
	mainTok := lc.FindMain(sent, verb, normalForms)
	if mainTok != nil {
		main = &PredicateRef{Token: mainTok, Role: RoleMain, Strategy: "lemma"}
	}
	var hint *syntax.Token
	sub, hint = lc.FindSubordinate(sent, mainTok)
	if sub != nil {
		conj = lc.FindConjunction(sent, mainTok, sub.Token, hint)
	}
	return
}

// ---------------------------- strategies

func childWithRel(sent *syntax.ParseResult, main *syntax.Token, rels []string, upos []string) *syntax.Token {
	for _, ch := range sent.Children(main) {
		if ch.HasDeprel(rels...) && (len(upos) == 0 || ch.HasUPOS(upos...)) {
			return ch
		}
	}
	return nil
}

func nearestVerbAfter(sent *syntax.ParseResult, tok *syntax.Token) *syntax.Token {
	following := sent.Following(tok)
	for i := range following {
		if following[i].HasUPOS("VERB") {
			return sent.Token(following[i].ID)
		}
	}
	return nil
}

func (lc *Locator) relStrategy(name string, rels, upos []string) SubordinateStrategy {
	return SubordinateStrategy{
		Name:      name,
		NeedsMain: true,
		Find: func(sent *syntax.ParseResult, main *syntax.Token) (*syntax.Token, *syntax.Token) {
			return childWithRel(sent, main, rels, upos), nil
		},
	}
}

func (lc *Locator) parataxisHeadStrategy() SubordinateStrategy {
	return SubordinateStrategy{
		Name:      StrategyParataxisHead,
		NeedsMain: true,
		Find: func(sent *syntax.ParseResult, main *syntax.Token) (*syntax.Token, *syntax.Token) {
			if main.HasDeprel("parataxis") {
				return sent.Head(main), nil
			}
			return nil, nil
		},
	}
}

func (lc *Locator) obliqueStrategy(obliqueRels []string) SubordinateStrategy {
	return SubordinateStrategy{
		Name:      StrategyOblique,
		NeedsMain: true,
		Find: func(sent *syntax.ParseResult, main *syntax.Token) (*syntax.Token, *syntax.Token) {
			for _, obl := range sent.Children(main) {
				if !obl.HasDeprel(obliqueRels...) {
					continue
				}
				if ans := childWithRel(sent, obl, lc.clausalRels, nil); ans != nil {
					return ans, nil
				}
			}
			return nil, nil
		},
	}
}

func (lc *Locator) lexicalConjunctionStrategy() SubordinateStrategy {
	return SubordinateStrategy{
		Name: StrategyLexicalConjunction,
		Find: func(sent *syntax.ParseResult, main *syntax.Token) (*syntax.Token, *syntax.Token) {
			tokens := sent.Tokens()
			if main != nil {
				tokens = sent.Following(main)
			}
			for i := range tokens {
				if lc.conjunctions.Contains(tokens[i].Lemma) {
					conj := sent.Token(tokens[i].ID)
					if sub := nearestVerbAfter(sent, conj); sub != nil {
						return sub, conj
					}
					return nil, nil
				}
			}
			return nil, nil
		},
	}
}

func (lc *Locator) followingStrategy() SubordinateStrategy {
	return SubordinateStrategy{
		Name:      StrategyFollowing,
		NeedsMain: true,
		Find: func(sent *syntax.ParseResult, main *syntax.Token) (*syntax.Token, *syntax.Token) {
			return nearestVerbAfter(sent, main), nil
		},
	}
}

// NewLocator creates a locator with strategies ordered from
// the strongest (structural) to the weakest (lexical) evidence.
func NewLocator(conf Conf) *Locator {
	ans := &Locator{
		conjunctions: NewLexicon(conf.Conjunctions),
		clausalRels:  conf.ClausalRelations,
	}
	ans.strategies = []SubordinateStrategy{
		ans.relStrategy(StrategyComplement, conf.ComplementRelations, nil),
		ans.relStrategy(StrategyAdjunct, conf.AdjunctRelations, nil),
		ans.relStrategy(StrategyNominal, conf.NominalRelations, conf.NominalPOS),
		ans.parataxisHeadStrategy(),
		ans.obliqueStrategy(conf.ObliqueRelations),
		ans.lexicalConjunctionStrategy(),
		ans.followingStrategy(),
	}
	return ans
}
