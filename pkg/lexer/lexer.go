// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lexer holds the token type of the language front end and the
// predicates the tooling needs before a full lexer exists.
package lexer

import "unicode"

// Token is a piece of source text and where it starts. Text may not be a
// valid token; checking that is the lexer's job.
type Token struct {
	Line   int // zero-based
	Column int // zero-based, in runes
	Text   string
}

func NewToken(line, column int, text string) Token {
	return Token{Line: line, Column: column, Text: text}
}

// IsIdentifier reports whether t's text is an identifier.
func (t Token) IsIdentifier() bool {
	return IsIdentifier(t.Text)
}

// IsIdentifier reports whether s is a letter followed by any number of
// letters and digits.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
