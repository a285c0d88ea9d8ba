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

import "fmt"

// FeatureBundle is a resolved set of inflectional features of
// a predicate (tense, aspect) and its subject (person, number).
// The zero value has all the features unknown.
type FeatureBundle struct {
	Tense  Tense  `json:"tense"`
	Aspect Aspect `json:"aspect"`
	Person Person `json:"person"`
	Number Number `json:"number"`
}

func (fb FeatureBundle) IsEmpty() bool {
	return !fb.Tense.IsKnown() && !fb.Aspect.IsKnown() &&
		!fb.Person.IsKnown() && !fb.Number.IsKnown()
}

func (fb FeatureBundle) String() string {
	return fmt.Sprintf(
		"FeatureBundle{tense: %s, aspect: %s, person: %s, number: %s}",
		fb.Tense, fb.Aspect, fb.Person, fb.Number,
	)
}
