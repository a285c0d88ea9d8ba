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

package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	conlluNumColumns = 10
	conlluEmpty      = "_"
)

func conlluValue(v string) string {
	if v == conlluEmpty {
		return ""
	}
	return v
}

// DecodeCoNLLU reads CoNLL-U formatted data and returns a document
// with one ParseResult per sentence. Multiword token ranges (1-2)
// and empty nodes (1.1) are skipped as they are not part of the basic
// dependency tree.
func DecodeCoNLLU(r io.Reader) (Document, error) {
	var ans Document
	var curr []Token
	var lineNum int

	flush := func() error {
		if len(curr) == 0 {
			return nil
		}
		pr, err := NewParseResult(curr)
		if err != nil {
			return fmt.Errorf("sentence ending at line %d: %w", lineNum, err)
		}
		ans = append(ans, pr)
		curr = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != conlluNumColumns {
			return nil, fmt.Errorf(
				"invalid CoNLL-U line %d: expected %d columns, found %d",
				lineNum, conlluNumColumns, len(cols))
		}
		if strings.ContainsAny(cols[0], "-.") {
			continue
		}
		id, err := strconv.Atoi(cols[0])
		if err != nil {
			return nil, fmt.Errorf("invalid CoNLL-U line %d: %w", lineNum, err)
		}
		head, err := strconv.Atoi(cols[6])
		if err != nil {
			return nil, fmt.Errorf("invalid CoNLL-U line %d (head): %w", lineNum, err)
		}
		curr = append(curr, Token{
			ID:     id,
			Text:   cols[1],
			Lemma:  conlluValue(cols[2]),
			UPOS:   conlluValue(cols[3]),
			XPOS:   conlluValue(cols[4]),
			Feats:  ParseUDFeats(cols[5]),
			Head:   head,
			Deprel: conlluValue(cols[7]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CoNLL-U data: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return ans, nil
}
