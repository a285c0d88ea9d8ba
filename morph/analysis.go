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

// Analysis is one candidate reading of a surface form produced
// by a morphological analyzer. Analyzers return the candidates
// ordered by their own ranking (best first).
type Analysis struct {
	Word       string  `json:"word"`
	NormalForm string  `json:"normalForm"`
	Tag        string  `json:"tag"`
	Score      float64 `json:"score"`
}

func (a Analysis) ParsedTag() OpenCorporaTag {
	return ParseOpenCorporaTag(a.Tag)
}

func (a Analysis) Features() FeatureBundle {
	return a.ParsedTag().Features()
}

// SelectReading picks the reading whose part of speech matches
// the provided UD coarse tag. If none matches, the first (best ranked)
// reading is returned. For an empty list, nil is returned.
func SelectReading(candidates []Analysis, upos string) *Analysis {
	if len(candidates) == 0 {
		return nil
	}
	for i := range candidates {
		if candidates[i].ParsedTag().MatchesUPOS(upos) {
			return &candidates[i]
		}
	}
	return &candidates[0]
}
