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
	"fmt"
	"strings"
)

// UnknownValue is how an unresolved feature is written to tabular
// and JSON output.
const UnknownValue = "-"

func parseName(names []string, kind, s string) (int, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" || v == UnknownValue || v == "unknown" {
		return 0, nil
	}
	for i, name := range names {
		if i > 0 && name == v {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid %s value `%s`", kind, s)
}

func nameOf(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return UnknownValue
	}
	return names[i]
}

// ---------------------- tense

type Tense int

const (
	TenseUnknown Tense = iota
	TensePast
	TensePresent
	TenseFuture
)

var tenseNames = []string{UnknownValue, "past", "present", "future"}

func (t Tense) String() string {
	return nameOf(tenseNames, int(t))
}

func (t Tense) IsKnown() bool {
	return t > TenseUnknown && int(t) < len(tenseNames)
}

func (t Tense) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tense) UnmarshalText(data []byte) error {
	v, err := parseName(tenseNames, "tense", string(data))
	if err != nil {
		return err
	}
	*t = Tense(v)
	return nil
}

func ParseTense(s string) (Tense, error) {
	v, err := parseName(tenseNames, "tense", s)
	return Tense(v), err
}

// ---------------------- aspect

type Aspect int

const (
	AspectUnknown Aspect = iota
	AspectPerfective
	AspectImperfective
)

var aspectNames = []string{UnknownValue, "pf", "ipf"}

func (a Aspect) String() string {
	return nameOf(aspectNames, int(a))
}

func (a Aspect) IsKnown() bool {
	return a > AspectUnknown && int(a) < len(aspectNames)
}

func (a Aspect) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Aspect) UnmarshalText(data []byte) error {
	v, err := parseName(aspectNames, "aspect", string(data))
	if err != nil {
		return err
	}
	*a = Aspect(v)
	return nil
}

func ParseAspect(s string) (Aspect, error) {
	v, err := parseName(aspectNames, "aspect", s)
	return Aspect(v), err
}

// ---------------------- person

type Person int

const (
	PersonUnknown Person = iota
	PersonFirst
	PersonSecond
	PersonThird
)

var personNames = []string{UnknownValue, "first", "second", "third"}

func (p Person) String() string {
	return nameOf(personNames, int(p))
}

func (p Person) IsKnown() bool {
	return p > PersonUnknown && int(p) < len(personNames)
}

func (p Person) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Person) UnmarshalText(data []byte) error {
	v, err := parseName(personNames, "person", string(data))
	if err != nil {
		return err
	}
	*p = Person(v)
	return nil
}

func ParsePerson(s string) (Person, error) {
	v, err := parseName(personNames, "person", s)
	return Person(v), err
}

// ---------------------- number

type Number int

const (
	NumberUnknown Number = iota
	NumberSingular
	NumberPlural
)

var numberNames = []string{UnknownValue, "singular", "plural"}

func (n Number) String() string {
	return nameOf(numberNames, int(n))
}

func (n Number) IsKnown() bool {
	return n > NumberUnknown && int(n) < len(numberNames)
}

func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalText(data []byte) error {
	v, err := parseName(numberNames, "number", string(data))
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

func ParseNumber(s string) (Number, error) {
	v, err := parseName(numberNames, "number", s)
	return Number(v), err
}
