package internal

import (
	"errors"
	"fmt"
)

// The compiler is fail-fast: each phase stops at its first error and returns one
// of the error types below. None of them carries a source position.

// LexError reports a word the tokenizer cannot classify.
type LexError struct {
	Word string
	Msg  string
}

func (e *LexError) Error() string {
	return "Tokenizer: " + e.Msg
}

// ParseError reports a grammar rule whose required token or sub-rule is missing.
type ParseError struct {
	Expected string
	Err      error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrNoMoreTokens) {
		return fmt.Sprintf("Parser: expected %s, but no more tokens left", e.Expected)
	}
	return fmt.Sprintf("Parser: expected %s", e.Expected)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SymbolError reports a malformed declaration node or an undefined name.
type SymbolError struct {
	Msg string
}

func (e *SymbolError) Error() string {
	return "SymbolTable: " + e.Msg
}

// CodegenError reports an expression or term node of unexpected shape.
type CodegenError struct {
	Msg string
}

func (e *CodegenError) Error() string {
	return "CodeGenerator: " + e.Msg
}

func makeLexError(word string, format string, args ...interface{}) error {
	return &LexError{Word: word, Msg: fmt.Sprintf(format, args...)}
}

func makeParseError(expected string, cause error) error {
	return &ParseError{Expected: expected, Err: cause}
}

func makeSemanticError(format string, args ...interface{}) error {
	return &SymbolError{Msg: fmt.Sprintf(format, args...)}
}

func makeCodegenError(format string, args ...interface{}) error {
	return &CodegenError{Msg: fmt.Sprintf(format, args...)}
}
