package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoMoreTokens  = errors.New("no more tokens left")
	ErrTokenMismatch = errors.New("token does not match format")
)

// TokenStream is a cursor over a token sequence. A failed match never moves the
// cursor, so grammar rules can probe for an optional construct and skip it.
type TokenStream struct {
	tokens []*Token
	pos    int
}

func NewTokenStream(tokens []*Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the next token without advancing the stream.
func (s *TokenStream) Peek() (*Token, error) {
	if !s.HasRemainTokens() {
		return nil, ErrNoMoreTokens
	}
	return s.tokens[s.pos], nil
}

// Next returns the next token and advances the stream if match accepts it.
func (s *TokenStream) Next(match func(*Token) bool) (*Token, error) {
	token, err := s.Peek()
	if err != nil {
		return nil, err
	}
	if !match(token) {
		return nil, ErrTokenMismatch
	}
	s.pos++
	return token, nil
}

func (s *TokenStream) Pos() int {
	return s.pos
}

func (s *TokenStream) HasRemainTokens() bool {
	return s.pos < len(s.tokens)
}

func (s *TokenStream) expect(expected string, match func(*Token) bool) (*Token, error) {
	token, err := s.Next(match)
	if err != nil {
		return nil, makeParseError(expected, err)
	}
	return token, nil
}

func (s *TokenStream) Keyword(keyWord string) (*Token, error) {
	return s.expect(fmt.Sprintf("keyword '%s'", keyWord), func(t *Token) bool {
		return t.IsKeyword(keyWord)
	})
}

func (s *TokenStream) Keywords(keyWords ...string) (*Token, error) {
	return s.expect(fmt.Sprintf("one of keywords '%s'", strings.Join(keyWords, "|")), func(t *Token) bool {
		for _, keyWord := range keyWords {
			if t.IsKeyword(keyWord) {
				return true
			}
		}
		return false
	})
}

func (s *TokenStream) Symbol(symbol rune) (*Token, error) {
	return s.expect(fmt.Sprintf("symbol '%c'", symbol), func(t *Token) bool {
		return t.IsSymbol(symbol)
	})
}

func (s *TokenStream) StringConstant() (*Token, error) {
	return s.expect("string constant", func(t *Token) bool { return t.tp == StringTP })
}

func (s *TokenStream) IntegerConstant() (*Token, error) {
	return s.expect("integer constant", func(t *Token) bool { return t.tp == IntegerTP })
}

func (s *TokenStream) Identifier() (*Token, error) {
	return s.expect("identifier", func(t *Token) bool { return t.tp == IdentifierTP })
}
