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
	"clausefeat/merror"
	"clausefeat/morph"
	"clausefeat/syntax"
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	analyticAuxLemma = "быть"
)

// Parser is a syntactic parser providing tokenization, tagging
// and dependency parsing of a text.
type Parser interface {
	Parse(ctx context.Context, text string) (syntax.Document, error)
}

// Analyzer is a morphological analyzer returning candidate readings
// of a word form ranked from the most probable one.
type Analyzer interface {
	Analyze(ctx context.Context, word string) ([]morph.Analysis, error)
}

// analyses maps token IDs to analyzer candidates
type analyses map[int][]morph.Analysis

func (an analyses) normalForms(sent *syntax.ParseResult) map[int]string {
	ans := make(map[int]string, len(an))
	for id, cands := range an {
		if r := morph.SelectReading(cands, sent.Token(id).UPOS); r != nil {
			ans[id] = r.NormalForm
		}
	}
	return ans
}

// Annotator fills feature columns of input rows. It does not hold
// any per-row state so a single instance can be used concurrently.
type Annotator struct {
	conf     Conf
	negation Lexicon
	parser   Parser
	analyzer Analyzer
	resolver *Resolver
	locator  *Locator
	subjects *SubjectResolver
	skipTags []string
}

// analyzeSentence obtains morphological analyses of the sentence
// words. In case the context ends before all the words are analyzed,
// the partial result is returned along with the context error.
func (a *Annotator) analyzeSentence(ctx context.Context, sent *syntax.ParseResult) (analyses, error) {
	ans := make(analyses)
	if a.analyzer == nil {
		return ans, nil
	}
	cache := make(map[string][]morph.Analysis)
	for _, tok := range sent.Tokens() {
		if tok.HasUPOS(a.skipTags...) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		word := strings.ToLower(tok.Text)
		cands, ok := cache[word]
		if !ok {
			var err error
			cands, err = a.analyzer.Analyze(ctx, word)
			if err != nil {
				log.Warn().
					Err(err).
					Str("word", word).
					Msg("morphological analysis failed, using parser tags only")
				cands = nil
			}
			cache[word] = cands
		}
		if len(cands) > 0 {
			ans[tok.ID] = cands
		}
	}
	return ans, ctx.Err()
}

// selectSentence returns the sentence to be annotated. Sentences with
// a main predicate candidate are preferred. Without such a sentence,
// the first one where the lexical search finds a subordinate predicate
// is used.
func (a *Annotator) selectSentence(
	ctx context.Context,
	doc syntax.Document,
	verb string,
) (*syntax.ParseResult, analyses, error) {
	all := make([]analyses, len(doc))
	var anErr error
	for i, sent := range doc {
		var err error
		all[i], err = a.analyzeSentence(ctx, sent)
		if err != nil && anErr == nil {
			anErr = err
		}
		if a.locator.FindMain(sent, verb, all[i].normalForms(sent)) != nil {
			return sent, all[i], anErr
		}
	}
	for i, sent := range doc {
		if sub, _ := a.locator.FindSubordinate(sent, nil); sub != nil {
			return sent, all[i], anErr
		}
	}
	return doc[0], all[0], anErr
}

func (a *Annotator) isNegated(sent *syntax.ParseResult, pred *syntax.Token) bool {
	for _, ch := range sent.Children(pred) {
		if a.negation.Contains(ch.Lemma) {
			return true
		}
	}
	return false
}

// analyticTense finds tense expressed by the auxiliary or copula
// `быть` (будет читать, был врачом).
func (a *Annotator) analyticTense(sent *syntax.ParseResult, pred *syntax.Token, an analyses) morph.Tense {
	for _, ch := range sent.Children(pred) {
		if ch.HasDeprel("aux", "cop") && NormalizeLemma(ch.Lemma) == analyticAuxLemma {
			if t := a.resolver.Resolve(ch, an[ch.ID]).Tense; t.IsKnown() {
				return t
			}
		}
	}
	return morph.TenseUnknown
}

// subjectFeatures returns person and number of the predicate's subject.
// For a nominal predicate without a subject, the predicate itself
// is used. Nouns are always third person.
func (a *Annotator) subjectFeatures(
	sent *syntax.ParseResult,
	pred *syntax.Token,
	predFeats morph.FeatureBundle,
	an analyses,
) (morph.FeatureBundle, bool) {
	subj := a.subjects.FindSubject(pred, sent)
	var ans morph.FeatureBundle
	if subj != nil {
		ans = a.resolver.Resolve(subj, an[subj.ID])
		if !ans.Person.IsKnown() && subj.HasUPOS("NOUN", "PROPN") {
			ans.Person = morph.PersonThird
		}
		if a.subjects.IsCoordinated(subj, sent) {
			ans.Number = morph.NumberPlural
		}
		return ans, true

	} else if pred.HasUPOS("NOUN", "PROPN", "PRON") {
		ans = predFeats
		if !ans.Person.IsKnown() && pred.HasUPOS("NOUN", "PROPN") {
			ans.Person = morph.PersonThird
		}
	}
	return ans, false
}

// predicateFeatures resolves tense and aspect from the predicate
// and person and number from its subject with a per-feature fallback
// to the predicate's own agreement morphology.
func (a *Annotator) predicateFeatures(
	sent *syntax.ParseResult,
	pred *syntax.Token,
	an analyses,
) (morph.FeatureBundle, bool) {
	predFeats := a.resolver.Resolve(pred, an[pred.ID])
	ans := morph.FeatureBundle{
		Tense:  predFeats.Tense,
		Aspect: predFeats.Aspect,
	}
	if !ans.Tense.IsKnown() {
		ans.Tense = a.analyticTense(sent, pred, an)
	}
	subjFeats, hasSubj := a.subjectFeatures(sent, pred, predFeats, an)
	ans.Person = subjFeats.Person
	if !ans.Person.IsKnown() {
		ans.Person = predFeats.Person
	}
	ans.Number = subjFeats.Number
	if !ans.Number.IsKnown() {
		ans.Number = predFeats.Number
	}
	return ans, hasSubj
}

// Annotate processes a single row. The returned record is always
// valid (features which cannot be determined are unknown). A non-nil
// error means the record is degraded: merror.ParseFailure for a target
// which could not be parsed (the record is then entirely unknown),
// merror.IncompleteAnalysis when the morphological analysis was
// interrupted (features come from the parser tags only).
func (a *Annotator) Annotate(ctx context.Context, row Row) (AnnotationRecord, error) {
	ans := UnknownRecord(row)
	doc, err := a.parser.Parse(ctx, row.Target)
	if err != nil {
		return ans, merror.ParseFailure{Msg: "failed to parse target", Cause: err}
	}
	if len(doc) == 0 {
		return ans, merror.ParseFailure{Msg: "parser returned no sentence"}
	}
	sent, an, anErr := a.selectSentence(ctx, doc, row.Verb)
	main, sub, conj := a.locator.Locate(sent, row.Verb, an.normalForms(sent))
	ans.Unresolved = []Role{}
	ans.Conjunction = conj.Lemma()

	if main != nil {
		if a.isNegated(sent, main.Token) {
			ans.Embedding = EmbeddingNegation

		} else {
			ans.Embedding = EmbeddingNone
		}
		ans.Main, _ = a.predicateFeatures(sent, main.Token, an)

	} else {
		ans.Unresolved = append(ans.Unresolved, RoleMain)
	}

	if sub != nil {
		var hasSubj bool
		ans.Sub, hasSubj = a.predicateFeatures(sent, sub.Token, an)
		if a.conf.InheritInfinitiveSubject && main != nil && !hasSubj &&
			sub.Token.Feat(morph.UDVerbForm) == "Inf" {
			ans.Sub.Person = ans.Main.Person
			ans.Sub.Number = ans.Main.Number
		}

	} else {
		ans.Unresolved = append(ans.Unresolved, RoleSubordinate)
	}
	if len(ans.Unresolved) == 0 {
		ans.Unresolved = nil
	}

	evt := log.Debug().
		Str("verb", row.Verb).
		Str("sentence", sent.Text()).
		Str("conjunction", ans.Conjunction)
	if main != nil {
		evt = evt.Int("mainId", main.Token.ID)
	}
	if sub != nil {
		evt = evt.Int("subId", sub.Token.ID).Str("subStrategy", sub.Strategy)
	}
	evt.Msg("annotated row")
	if anErr != nil {
		log.Warn().
			Err(anErr).
			Str("verb", row.Verb).
			Str("source", row.Source).
			Msg("morphological analysis interrupted, row annotated using parser tags only")
		return ans, merror.IncompleteAnalysis{Msg: "morphological analysis interrupted", Cause: anErr}
	}
	return ans, nil
}

// NewAnnotator creates an annotator. The analyzer is optional
// (nil means parser tags only). The conf is expected to be
// validated (see Conf.ValidateAndDefaults).
func NewAnnotator(conf Conf, parser Parser, analyzer Analyzer) *Annotator {
	return &Annotator{
		conf:     conf,
		negation: NewLexicon(conf.NegationLemmas),
		parser:   parser,
		analyzer: analyzer,
		resolver: NewResolver(),
		locator:  NewLocator(conf),
		subjects: NewSubjectResolver(conf.SubjectRelations),
		skipTags: []string{"PUNCT", "SYM", "NUM", "X"},
	}
}
