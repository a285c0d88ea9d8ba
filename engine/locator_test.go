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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyOrder(t *testing.T) {
	lc := NewLocator(DefaultConf())
	var names []string
	for _, s := range lc.Strategies() {
		names = append(names, s.Name)
	}
	assert.Equal(
		t,
		[]string{
			StrategyComplement, StrategyAdjunct, StrategyNominal, StrategyParataxisHead,
			StrategyOblique, StrategyLexicalConjunction, StrategyFollowing,
		},
		names,
	)
}

func TestLocateComplement(t *testing.T) {
	sent := mustParse(t, testParses[txtThink])
	main, sub, conj := NewLocator(DefaultConf()).Locate(sent, "думать", nil)
	require.NotNil(t, main)
	require.NotNil(t, sub)
	assert.Equal(t, "думала", main.Token.Text)
	assert.Equal(t, RoleMain, main.Role)
	assert.Equal(t, "придёт", sub.Token.Text)
	assert.Equal(t, RoleSubordinate, sub.Role)
	assert.Equal(t, StrategyComplement, sub.Strategy)
	assert.Equal(t, "что", conj.Lemma())
	assert.Equal(t, ConjStructural, conj.Source)
}

func TestLocateNormalizesVerb(t *testing.T) {
	sent := mustParse(t, testParses[txtThink])
	main, _, _ := NewLocator(DefaultConf()).Locate(sent, " ДУМАТЬ ", nil)
	require.NotNil(t, main)
	assert.Equal(t, 2, main.Token.ID)
}

func TestLocateByAnalyzerNormalForm(t *testing.T) {
	sent := mustParse(t, testParses[txtSaid])
	lc := NewLocator(DefaultConf())
	main, _, _ := lc.Locate(sent, "говорить", nil)
	assert.Nil(t, main)
	main, _, _ = lc.Locate(sent, "говорить", map[int]string{2: "говорить"})
	require.NotNil(t, main)
	assert.Equal(t, "сказал", main.Token.Text)
}

func TestLocateFollowingVerb(t *testing.T) {
	sent := mustParse(t, testParses[txtSaid])
	main, sub, conj := NewLocator(DefaultConf()).Locate(sent, "сказать", nil)
	require.NotNil(t, main)
	require.NotNil(t, sub)
	assert.Equal(t, "приходи", sub.Token.Text)
	assert.Equal(t, StrategyFollowing, sub.Strategy)
	assert.Nil(t, conj)
	assert.Equal(t, "-", conj.Lemma())
}

func TestLocateWithoutMainUsesLexicalConjunction(t *testing.T) {
	sent := mustParse(t, testParses[txtSeems])
	main, sub, conj := NewLocator(DefaultConf()).Locate(sent, "думать", nil)
	assert.Nil(t, main)
	require.NotNil(t, sub)
	assert.Equal(t, "придёт", sub.Token.Text)
	assert.Equal(t, StrategyLexicalConjunction, sub.Strategy)
	assert.Equal(t, "что", conj.Lemma())
}

func TestLocateWithoutMainAndConjunction(t *testing.T) {
	sent := mustParse(t, testParses[txtSaid])
	main, sub, conj := NewLocator(DefaultConf()).Locate(sent, "думать", nil)
	assert.Nil(t, main)
	assert.Nil(t, sub)
	assert.Nil(t, conj)
}

func TestLocateParataxisHead(t *testing.T) {
	sent := mustParse(t, testParses[txtParenthesis])
	main, sub, conj := NewLocator(DefaultConf()).Locate(sent, "думать", nil)
	require.NotNil(t, main)
	require.NotNil(t, sub)
	assert.Equal(t, "думаю", main.Token.Text)
	assert.Equal(t, "придёт", sub.Token.Text)
	assert.Equal(t, StrategyParataxisHead, sub.Strategy)
	assert.Nil(t, conj)
}

func TestLocateNominal(t *testing.T) {
	sent := mustParse(t, testParses[txtNominal])
	_, sub, _ := NewLocator(DefaultConf()).Locate(sent, "считать", nil)
	require.NotNil(t, sub)
	assert.Equal(t, "другом", sub.Token.Text)
	assert.Equal(t, StrategyNominal, sub.Strategy)
}

func TestLocateOblique(t *testing.T) {
	sent := mustParse(t, testParses[txtOblique])
	_, sub, conj := NewLocator(DefaultConf()).Locate(sent, "думать", nil)
	require.NotNil(t, sub)
	assert.Equal(t, "придёт", sub.Token.Text)
	assert.Equal(t, StrategyOblique, sub.Strategy)
	assert.Equal(t, "что", conj.Lemma())
}

func TestFindMainPrefersClausalDependents(t *testing.T) {
	sent := mustParse(t, conllu(
		"1 Думаю думать VERB _ Person=1 0 root _ _",
		"2 , , PUNCT _ _ 5 punct _ _",
		"3 что что SCONJ _ _ 5 mark _ _",
		"4 ты ты PRON _ Person=2 5 nsubj _ _",
		"5 думаешь думать VERB _ Person=2 1 ccomp _ _",
		"6 обо о ADP _ _ 7 case _ _",
		"7 мне я PRON _ Person=1 5 obl _ _",
	))
	lc := NewLocator(DefaultConf())
	main := lc.FindMain(sent, "думать", nil)
	require.NotNil(t, main)
	assert.Equal(t, 1, main.ID)

	sent = mustParse(t, conllu(
		"1 Думаю думать VERB _ Person=1 3 parataxis _ _",
		"2 , , PUNCT _ _ 1 punct _ _",
		"3 думаешь думать VERB _ Person=2 0 root _ _",
	))
	main = lc.FindMain(sent, "думать", nil)
	require.NotNil(t, main)
	assert.Equal(t, 3, main.ID)
}

func TestFindConjunctionLexicalScan(t *testing.T) {
	sent := mustParse(t, conllu(
		"1 Он он PRON _ _ 2 nsubj _ _",
		"2 сказал сказать VERB _ _ 0 root _ _",
		"3 , , PUNCT _ _ 2 punct _ _",
		"4 будто будто PART _ _ 2 discourse _ _",
		"5 придёт прийти VERB _ _ 2 ccomp _ _",
	))
	lc := NewLocator(DefaultConf())
	conj := lc.FindConjunction(sent, sent.Token(2), sent.Token(5), nil)
	require.NotNil(t, conj)
	assert.Equal(t, "будто", conj.Lemma())
	assert.Equal(t, ConjLexical, conj.Source)
	assert.Nil(t, lc.FindConjunction(sent, sent.Token(2), nil, nil))
}

func TestCustomConjunctionLexicon(t *testing.T) {
	conf := DefaultConf()
	conf.Conjunctions = []string{"ли"}
	sent := mustParse(t, testParses[txtSeems])
	_, sub, _ := NewLocator(conf).Locate(sent, "думать", nil)
	assert.Nil(t, sub)
}
