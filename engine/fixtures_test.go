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
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// conllu converts space separated rows into tab separated CoNLL-U
func conllu(lines ...string) string {
	var sb strings.Builder
	for _, line := range lines {
		if line != "" {
			sb.WriteString(strings.Join(strings.Fields(line), "\t"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func mustParse(t *testing.T, data string) *syntax.ParseResult {
	doc, err := syntax.DecodeCoNLLU(strings.NewReader(data))
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	return doc[0]
}

type fakeParser struct {
	parses map[string]string
	err    error
}

func (p *fakeParser) Parse(ctx context.Context, text string) (syntax.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	data, ok := p.parses[text]
	if !ok {
		return nil, fmt.Errorf("no parse for `%s`", text)
	}
	return syntax.DecodeCoNLLU(strings.NewReader(data))
}

type fakeAnalyzer map[string][]morph.Analysis

func (fa fakeAnalyzer) Analyze(ctx context.Context, word string) ([]morph.Analysis, error) {
	return fa[word], nil
}

type failingAnalyzer struct{}

func (fa failingAnalyzer) Analyze(ctx context.Context, word string) ([]morph.Analysis, error) {
	return nil, errors.New("analyzer unavailable")
}

const (
	txtThink       = "Она думала, что он придёт."
	txtSaid        = "Он сказал приходи"
	txtSeems       = "Кажется, что он придёт"
	txtProDrop     = "Думаю, что она придёт"
	txtMistagged   = "Он думает, что она придёт"
	txtNegated     = "Она не думала, что он придёт"
	txtAnalytic    = "Она думала, что он будет читать"
	txtCoordinated = "Маша и Петя думали, что он придёт"
	txtParenthesis = "Он, думаю, придёт"
	txtTwoSents    = "Было поздно. Она думала, что он придёт."
	txtWant        = "Я хочу уйти"
	txtNominal     = "Она считала его другом"
	txtOblique     = "Он думал о том, что она придёт"
)

var testParses = map[string]string{
	txtThink: conllu(
		"1 Она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 2 nsubj _ _",
		"2 думала думать VERB _ Aspect=Imp|Gender=Fem|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"3 , , PUNCT _ _ 6 punct _ _",
		"4 что что SCONJ _ _ 6 mark _ _",
		"5 он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 6 nsubj _ _",
		"6 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 2 ccomp _ _",
		"7 . . PUNCT _ _ 2 punct _ _",
	),
	txtSaid: conllu(
		"1 Он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 2 nsubj _ _",
		"2 сказал сказать VERB _ Aspect=Perf|Gender=Masc|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"3 приходи приходить VERB _ Aspect=Imp|Mood=Imp|Number=Sing|Person=2|VerbForm=Fin 2 obj _ _",
	),
	txtSeems: conllu(
		"1 Кажется казаться VERB _ Aspect=Imp|Mood=Ind|Number=Sing|Person=3|Tense=Pres|VerbForm=Fin 0 root _ _",
		"2 , , PUNCT _ _ 5 punct _ _",
		"3 что что SCONJ _ _ 5 mark _ _",
		"4 он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 5 nsubj _ _",
		"5 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 1 csubj _ _",
	),
	txtProDrop: conllu(
		"1 Думаю думать VERB _ Aspect=Imp|Mood=Ind|Number=Sing|Person=1|Tense=Pres|VerbForm=Fin 0 root _ _",
		"2 , , PUNCT _ _ 5 punct _ _",
		"3 что что SCONJ _ _ 5 mark _ _",
		"4 она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 5 nsubj _ _",
		"5 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 1 ccomp _ _",
	),
	txtMistagged: conllu(
		"1 Он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 2 nsubj _ _",
		"2 думает думать VERB _ Aspect=Imp|Mood=Ind|Number=Plur|Person=1|Tense=Pres|VerbForm=Fin 0 root _ _",
		"3 , , PUNCT _ _ 6 punct _ _",
		"4 что что SCONJ _ _ 6 mark _ _",
		"5 она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 6 nsubj _ _",
		"6 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 2 ccomp _ _",
	),
	txtNegated: conllu(
		"1 Она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 3 nsubj _ _",
		"2 не не PART _ Polarity=Neg 3 advmod _ _",
		"3 думала думать VERB _ Aspect=Imp|Gender=Fem|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"4 , , PUNCT _ _ 7 punct _ _",
		"5 что что SCONJ _ _ 7 mark _ _",
		"6 он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 7 nsubj _ _",
		"7 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 3 ccomp _ _",
	),
	txtAnalytic: conllu(
		"1 Она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 2 nsubj _ _",
		"2 думала думать VERB _ Aspect=Imp|Gender=Fem|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"3 , , PUNCT _ _ 7 punct _ _",
		"4 что что SCONJ _ _ 7 mark _ _",
		"5 он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 7 nsubj _ _",
		"6 будет быть AUX _ Aspect=Imp|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 7 aux _ _",
		"7 читать читать VERB _ Aspect=Imp|VerbForm=Inf 2 ccomp _ _",
	),
	txtCoordinated: conllu(
		"1 Маша Маша PROPN _ Case=Nom|Gender=Fem|Number=Sing 4 nsubj _ _",
		"2 и и CCONJ _ _ 3 cc _ _",
		"3 Петя Петя PROPN _ Case=Nom|Gender=Masc|Number=Sing 1 conj _ _",
		"4 думали думать VERB _ Aspect=Imp|Mood=Ind|Number=Plur|Tense=Past|VerbForm=Fin 0 root _ _",
		"5 , , PUNCT _ _ 8 punct _ _",
		"6 что что SCONJ _ _ 8 mark _ _",
		"7 он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 8 nsubj _ _",
		"8 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 4 ccomp _ _",
	),
	txtParenthesis: conllu(
		"1 Он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 5 nsubj _ _",
		"2 , , PUNCT _ _ 3 punct _ _",
		"3 думаю думать VERB _ Aspect=Imp|Mood=Ind|Number=Sing|Person=1|Tense=Pres|VerbForm=Fin 5 parataxis _ _",
		"4 , , PUNCT _ _ 3 punct _ _",
		"5 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 0 root _ _",
	),
	txtTwoSents: conllu(
		"1 Было быть AUX _ Aspect=Imp|Gender=Neut|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 2 cop _ _",
		"2 поздно поздно ADV _ Degree=Pos 0 root _ _",
		"3 . . PUNCT _ _ 2 punct _ _",
		"",
		"1 Она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 2 nsubj _ _",
		"2 думала думать VERB _ Aspect=Imp|Gender=Fem|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"3 , , PUNCT _ _ 6 punct _ _",
		"4 что что SCONJ _ _ 6 mark _ _",
		"5 он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 6 nsubj _ _",
		"6 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 2 ccomp _ _",
		"7 . . PUNCT _ _ 2 punct _ _",
	),
	txtWant: conllu(
		"1 Я я PRON _ Case=Nom|Number=Sing|Person=1 2 nsubj _ _",
		"2 хочу хотеть VERB _ Aspect=Imp|Mood=Ind|Number=Sing|Person=1|Tense=Pres|VerbForm=Fin 0 root _ _",
		"3 уйти уйти VERB _ Aspect=Perf|VerbForm=Inf 2 xcomp _ _",
	),
	txtNominal: conllu(
		"1 Она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 2 nsubj _ _",
		"2 считала считать VERB _ Aspect=Imp|Gender=Fem|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"3 его он PRON _ Case=Acc|Gender=Masc|Number=Sing|Person=3 2 obj _ _",
		"4 другом друг NOUN _ Animacy=Anim|Case=Ins|Gender=Masc|Number=Sing 2 obl _ _",
	),
	txtOblique: conllu(
		"1 Он он PRON _ Case=Nom|Gender=Masc|Number=Sing|Person=3 2 nsubj _ _",
		"2 думал думать VERB _ Aspect=Imp|Gender=Masc|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin 0 root _ _",
		"3 о о ADP _ _ 4 case _ _",
		"4 том то PRON _ Case=Loc|Gender=Neut|Number=Sing 2 obl _ _",
		"5 , , PUNCT _ _ 8 punct _ _",
		"6 что что SCONJ _ _ 8 mark _ _",
		"7 она она PRON _ Case=Nom|Gender=Fem|Number=Sing|Person=3 8 nsubj _ _",
		"8 придёт прийти VERB _ Aspect=Perf|Mood=Ind|Number=Sing|Person=3|Tense=Fut|VerbForm=Fin 4 acl _ _",
	),
}

var testAnalyses = fakeAnalyzer{
	"она": {
		{Word: "она", NormalForm: "она", Tag: "NPRO,femn,3per,Anph sing,nomn", Score: 1},
	},
	"он": {
		{Word: "он", NormalForm: "он", Tag: "NPRO,masc,3per,Anph sing,nomn", Score: 1},
	},
	"думала": {
		{Word: "думала", NormalForm: "думать", Tag: "VERB,impf,tran femn,sing,past,indc", Score: 1},
	},
	"придёт": {
		{Word: "придёт", NormalForm: "прийти", Tag: "VERB,perf,intr sing,3per,futr,indc", Score: 1},
	},
	"что": {
		{Word: "что", NormalForm: "что", Tag: "CONJ", Score: 0.6},
		{Word: "что", NormalForm: "что", Tag: "NPRO,neut sing,nomn", Score: 0.4},
	},
}

func newTestAnnotator(analyzer Analyzer) *Annotator {
	return NewAnnotator(DefaultConf(), &fakeParser{parses: testParses}, analyzer)
}
