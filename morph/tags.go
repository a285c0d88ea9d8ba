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

package morph

import (
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
)

// Universal Dependencies feature names
const (
	UDTense    = "Tense"
	UDAspect   = "Aspect"
	UDPerson   = "Person"
	UDNumber   = "Number"
	UDVerbForm = "VerbForm"
	UDPolarity = "Polarity"
)

var (
	udTenses = map[string]Tense{
		"Past": TensePast,
		"Pres": TensePresent,
		"Fut":  TenseFuture,
	}
	udAspects = map[string]Aspect{
		"Perf": AspectPerfective,
		"Imp":  AspectImperfective,
	}
	udPersons = map[string]Person{
		"1": PersonFirst,
		"2": PersonSecond,
		"3": PersonThird,
	}
	udNumbers = map[string]Number{
		"Sing": NumberSingular,
		"Plur": NumberPlural,
	}
)

// FromUDFeats maps Universal Dependencies morphological features
// to a (possibly partial) bundle. Values outside of the supported
// domain are treated as missing.
func FromUDFeats(feats map[string]string) FeatureBundle {
	var ans FeatureBundle
	if len(feats) == 0 {
		return ans
	}
	ans.Tense = udTenses[feats[UDTense]]
	ans.Aspect = udAspects[feats[UDAspect]]
	ans.Person = udPersons[feats[UDPerson]]
	ans.Number = udNumbers[feats[UDNumber]]
	return ans
}

// ----------------------------- OpenCorpora

var (
	ocTenses = map[string]Tense{
		"past": TensePast,
		"pres": TensePresent,
		"futr": TenseFuture,
	}
	ocAspects = map[string]Aspect{
		"perf": AspectPerfective,
		"impf": AspectImperfective,
	}
	ocPersons = map[string]Person{
		"1per": PersonFirst,
		"2per": PersonSecond,
		"3per": PersonThird,
	}
	ocNumbers = map[string]Number{
		"sing": NumberSingular,
		"plur": NumberPlural,
	}

	// ocPosToUD maps OpenCorpora parts of speech to the UD coarse
	// tags they can be tagged with by a UD parser
	ocPosToUD = map[string][]string{
		"NOUN": {"NOUN", "PROPN"},
		"ADJF": {"ADJ", "DET"},
		"ADJS": {"ADJ"},
		"COMP": {"ADJ", "ADV"},
		"VERB": {"VERB", "AUX"},
		"INFN": {"VERB", "AUX"},
		"PRTF": {"VERB", "ADJ"},
		"PRTS": {"VERB", "ADJ"},
		"GRND": {"VERB"},
		"NUMR": {"NUM"},
		"ADVB": {"ADV"},
		"NPRO": {"PRON"},
		"PRED": {"ADV", "VERB"},
		"PREP": {"ADP"},
		"CONJ": {"CCONJ", "SCONJ"},
		"PRCL": {"PART"},
		"INTJ": {"INTJ"},
	}
)

// OpenCorporaTag is a parsed OpenCorpora tag string as produced
// e.g. by pymorphy analyzers ("VERB,perf,intr sing,3per,futr,indc").
// The first grammeme is the part of speech.
type OpenCorporaTag struct {
	POS       string
	Grammemes []string
}

func (tag OpenCorporaTag) Has(grammeme string) bool {
	return collections.SliceContains(tag.Grammemes, grammeme)
}

// MatchesUPOS tests whether the tag's part of speech is compatible
// with a UD coarse part of speech.
func (tag OpenCorporaTag) MatchesUPOS(upos string) bool {
	return collections.SliceContains(ocPosToUD[tag.POS], upos)
}

func (tag OpenCorporaTag) Features() FeatureBundle {
	var ans FeatureBundle
	for _, g := range tag.Grammemes {
		if v, ok := ocTenses[g]; ok {
			ans.Tense = v

		} else if v, ok := ocAspects[g]; ok {
			ans.Aspect = v

		} else if v, ok := ocPersons[g]; ok {
			ans.Person = v

		} else if v, ok := ocNumbers[g]; ok {
			ans.Number = v
		}
	}
	return ans
}

func ParseOpenCorporaTag(tag string) OpenCorporaTag {
	var ans OpenCorporaTag
	items := strings.FieldsFunc(tag, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(items) == 0 {
		return ans
	}
	ans.POS = items[0]
	ans.Grammemes = items
	return ans
}
