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
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySentence = errors.New("empty sentence")
	ErrInvalidTree   = errors.New("invalid dependency tree")
)

// ParseResult is a single parsed sentence: tokens plus the dependency
// tree connecting them. The tree has exactly one root and each non-root
// token has exactly one head.
type ParseResult struct {
	tokens   []Token
	children [][]int
	root     int
}

// NewParseResult validates the provided tokens and creates
// a ParseResult. Token IDs must form the sequence 1..n.
func NewParseResult(tokens []Token) (*ParseResult, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptySentence
	}
	ans := &ParseResult{
		tokens:   tokens,
		children: make([][]int, len(tokens)),
		root:     -1,
	}
	for i, tok := range tokens {
		if tok.ID != i+1 {
			return nil, fmt.Errorf("%w: token %d has unexpected ID %d", ErrInvalidTree, i+1, tok.ID)
		}
		if tok.Head < 0 || tok.Head > len(tokens) {
			return nil, fmt.Errorf("%w: token %d has head %d out of range", ErrInvalidTree, tok.ID, tok.Head)
		}
		if tok.Head == tok.ID {
			return nil, fmt.Errorf("%w: token %d governs itself", ErrInvalidTree, tok.ID)
		}
		if tok.Head == 0 {
			if ans.root >= 0 {
				return nil, fmt.Errorf(
					"%w: multiple roots (%d, %d)", ErrInvalidTree, ans.root+1, tok.ID)
			}
			ans.root = i
			continue
		}
		ans.children[tok.Head-1] = append(ans.children[tok.Head-1], i)
	}
	if ans.root < 0 {
		return nil, fmt.Errorf("%w: no root found", ErrInvalidTree)
	}
	// every token must be reachable from the root (i.e. no cycles)
	seen := make([]bool, len(tokens))
	stack := []int{ans.root}
	var numSeen int
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[curr] {
			continue
		}
		seen[curr] = true
		numSeen++
		stack = append(stack, ans.children[curr]...)
	}
	if numSeen != len(tokens) {
		return nil, fmt.Errorf("%w: cycle detected", ErrInvalidTree)
	}
	return ans, nil
}

func (p *ParseResult) Len() int {
	return len(p.tokens)
}

// Tokens returns the sentence tokens in linear order. The returned
// slice must be treated as read-only.
func (p *ParseResult) Tokens() []Token {
	return p.tokens
}

// Token returns a token by its ID (1-based). For an invalid ID,
// nil is returned.
func (p *ParseResult) Token(id int) *Token {
	if id < 1 || id > len(p.tokens) {
		return nil
	}
	return &p.tokens[id-1]
}

func (p *ParseResult) Root() *Token {
	return &p.tokens[p.root]
}

// Head returns the governing token of t, nil for the root.
func (p *ParseResult) Head(t *Token) *Token {
	return p.Token(t.Head)
}

// Children returns direct dependents of t in linear order.
func (p *ParseResult) Children(t *Token) []*Token {
	idxs := p.children[t.ID-1]
	ans := make([]*Token, len(idxs))
	for i, idx := range idxs {
		ans[i] = &p.tokens[idx]
	}
	return ans
}

// Depth returns the number of edges between t and the root.
func (p *ParseResult) Depth(t *Token) int {
	var depth int
	for curr := t; !curr.IsRoot(); curr = p.Head(curr) {
		depth++
	}
	return depth
}

// Following returns tokens positioned after t in linear order.
func (p *ParseResult) Following(t *Token) []Token {
	return p.tokens[t.ID:]
}

// Between returns tokens strictly between a and b (in any order).
func (p *ParseResult) Between(a, b *Token) []Token {
	from, to := a.ID, b.ID
	if from > to {
		from, to = to, from
	}
	if to-from < 2 {
		return []Token{}
	}
	return p.tokens[from : to-1]
}

func (p *ParseResult) Text() string {
	var sb strings.Builder
	for i, tok := range p.tokens {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Document is an ordered list of parsed sentences.
type Document []*ParseResult

func (doc Document) NumTokens() int {
	var ans int
	for _, s := range doc {
		ans += s.Len()
	}
	return ans
}
