package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream(t *testing.T, content string) *TokenStream {
	tokens, err := Tokenize(content)
	require.Nil(t, err)
	return NewTokenStream(tokens)
}

func TestTokenStream_Peek(t *testing.T) {
	s := newTestStream(t, "class Main")
	token, err := s.Peek()
	require.Nil(t, err)
	assert.Equal(t, "class", token.Content())
	token, err = s.Peek()
	require.Nil(t, err)
	assert.Equal(t, "class", token.Content())
	assert.Equal(t, 0, s.Pos())

	empty := NewTokenStream(nil)
	_, err = empty.Peek()
	assert.True(t, errors.Is(err, ErrNoMoreTokens))
	assert.False(t, empty.HasRemainTokens())
}

func TestTokenStream_NoMoveOnFailure(t *testing.T) {
	s := newTestStream(t, `class Main { "str" 12`)
	testData := []struct {
		Match func() (*Token, error)
	}{
		{Match: func() (*Token, error) { return s.Keyword("function") }},
		{Match: func() (*Token, error) { return s.Keywords("static", "field") }},
		{Match: func() (*Token, error) { return s.Symbol('{') }},
		{Match: func() (*Token, error) { return s.Identifier() }},
		{Match: func() (*Token, error) { return s.StringConstant() }},
		{Match: func() (*Token, error) { return s.IntegerConstant() }},
	}
	for i, data := range testData {
		_, err := data.Match()
		assert.NotNil(t, err, i)
		assert.Equal(t, 0, s.Pos(), i)
	}
}

func TestTokenStream_Matchers(t *testing.T) {
	s := newTestStream(t, `class Main { "str" 12 field`)
	token, err := s.Keyword("class")
	require.Nil(t, err)
	assert.Equal(t, "class", token.Content())
	token, err = s.Identifier()
	require.Nil(t, err)
	assert.Equal(t, "Main", token.Content())
	token, err = s.Symbol('{')
	require.Nil(t, err)
	assert.Equal(t, "{", token.Content())
	token, err = s.StringConstant()
	require.Nil(t, err)
	assert.Equal(t, "str", token.Content())
	token, err = s.IntegerConstant()
	require.Nil(t, err)
	assert.Equal(t, 12, token.IntValue())
	token, err = s.Keywords("static", "field")
	require.Nil(t, err)
	assert.Equal(t, "field", token.Content())
	assert.False(t, s.HasRemainTokens())

	_, err = s.Symbol('}')
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "symbol '}'", parseErr.Expected)
	assert.True(t, errors.Is(err, ErrNoMoreTokens))
	assert.Equal(t, "Parser: expected symbol '}', but no more tokens left", err.Error())
}

func TestTokenStream_Next(t *testing.T) {
	s := newTestStream(t, "a b")
	_, err := s.Next(func(tk *Token) bool { return tk.Content() == "b" })
	assert.True(t, errors.Is(err, ErrTokenMismatch))
	token, err := s.Next(func(*Token) bool { return true })
	require.Nil(t, err)
	assert.Equal(t, "a", token.Content())
	assert.Equal(t, 1, s.Pos())
}
