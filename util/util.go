package util

import (
	"path/filepath"
	"strings"
	"unicode"
)

const jackFileExt = ".jack"

func IsNumber(r rune) bool {
	return unicode.IsDigit(r)
}

func IsUnderScore(r rune) bool {
	return r == '_'
}

func IsLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func IsWhiteSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func IsLetterOrUnderscore(r rune) bool {
	return IsLetter(r) || IsUnderScore(r)
}

func IsLetterOrUnderscoreOrNumber(r rune) bool {
	return IsLetter(r) || IsUnderScore(r) || IsNumber(r)
}

// IsJackFile reports whether fileName names a jack source file.
func IsJackFile(fileName string) bool {
	return len(fileName) > len(jackFileExt) && strings.HasSuffix(fileName, jackFileExt)
}

// TrimExt returns the base name of path without its extension, e.g. Main for dir/Main.jack.
func TrimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
