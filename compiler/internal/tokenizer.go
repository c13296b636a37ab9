package internal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nands/jackc/util"
)

// A simple Tokenizer for jack.

// Jack language has those elements:
// * KeyWord: class, constructor, function, method, field, static, var, int, char, boolean, void, true,
// 			false, null, this, let, do, if, else, while, return.
// * Symbol: {, }, (, ), [, ], ., ,, ;, +, -, *, /, &, |, <, >, =, ~.
// * Constant: integer (0 ~ 65535), string ("xxx", no escapes).
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /**/, //.

type TokenType int

const (
	KeywordTP    TokenType = iota // class
	SymbolTP                      // {
	IntegerTP                     // 1010
	StringTP                      // "xxx"
	IdentifierTP                  // varA
)

var tokenTypeNames = [...]string{
	KeywordTP:    "keyword",
	SymbolTP:     "symbol",
	IntegerTP:    "integerConstant",
	StringTP:     "stringConstant",
	IdentifierTP: "identifier",
}

func (tp TokenType) String() string {
	if tp < 0 || int(tp) >= len(tokenTypeNames) {
		return "unknown"
	}
	return tokenTypeNames[tp]
}

var keyWords = map[string]bool{
	"class":       true,
	"constructor": true,
	"function":    true,
	"method":      true,
	"field":       true,
	"static":      true,
	"var":         true,
	"int":         true,
	"char":        true,
	"boolean":     true,
	"void":        true,
	"true":        true,
	"false":       true,
	"null":        true,
	"this":        true,
	"let":         true,
	"do":          true,
	"if":          true,
	"else":        true,
	"while":       true,
	"return":      true,
}

const symbols = "{}()[].,;+-*/&|<>=~"

func isSymbol(r rune) bool {
	return strings.ContainsRune(symbols, r)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

type Token struct {
	content string
	value   int // integer value of an IntegerTP token.
	tp      TokenType
}

func (t *Token) TP() TokenType {
	return t.tp
}

func (t *Token) Content() string {
	return t.content
}

func (t *Token) IntValue() int {
	return t.value
}

func (t *Token) IsKeyword(keyWord string) bool {
	return t.tp == KeywordTP && t.content == keyWord
}

func (t *Token) IsSymbol(symbol rune) bool {
	return t.tp == SymbolTP && t.content == string(symbol)
}

// XML renders the token as a tagged value, e.g. <symbol> &lt; </symbol>.
func (t *Token) XML() string {
	content := t.content
	if t.tp == SymbolTP {
		content = xmlEscaper.Replace(content)
	}
	return fmt.Sprintf("<%s> %s </%s>", t.tp, content, t.tp)
}

func (t *Token) String() string {
	return t.XML()
}

// TokensXML renders a whole token stream as <tokens>...</tokens>.
func TokensXML(tokens []*Token) string {
	var sb strings.Builder
	sb.WriteString("<tokens>\n")
	for _, token := range tokens {
		sb.WriteString(token.XML())
		sb.WriteByte('\n')
	}
	sb.WriteString("</tokens>\n")
	return sb.String()
}

type Tokenizer struct {
	tokens   []*Token
	word     []rune
	literal  []rune
	inString bool
}

// Tokenize splits content into jack tokens.
func Tokenize(content string) ([]*Token, error) {
	tokenizer := &Tokenizer{}
	return tokenizer.tokenizeCompacted(StripComments(content))
}

// Tokenize accepts a source `rd` and tokenizes its content according to jack language rules.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) ([]*Token, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	tokenizer.Reset()
	return tokenizer.tokenizeCompacted(StripComments(string(content)))
}

// StripComments removes `//` line comments and non-nesting `/* */` block comments
// and trims the leading and ending whitespace of the document. Comment markers
// inside a string constant are kept.
func StripComments(content string) string {
	var (
		sb        strings.Builder
		commented bool
		inString  bool
	)
	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		runes := []rune(strings.TrimSuffix(line, "\r"))
		for pos := 0; pos < len(runes); pos++ {
			r, next := runes[pos], rune(0)
			if pos+1 < len(runes) {
				next = runes[pos+1]
			}
			switch {
			case commented:
				if r == '*' && next == '/' {
					commented = false
					pos++
					sb.WriteByte(' ')
				}
			case inString:
				if r == '"' {
					inString = false
				}
				sb.WriteRune(r)
			case r == '"':
				inString = true
				sb.WriteRune(r)
			case r == '/' && next == '/':
				pos = len(runes)
			case r == '/' && next == '*':
				commented = true
				pos++
			default:
				sb.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

func (tokenizer *Tokenizer) tokenizeCompacted(content string) ([]*Token, error) {
	for _, r := range content {
		if tokenizer.inString {
			tokenizer.tokenStringRune(r)
			continue
		}
		if !util.IsWhiteSpace(r) && !isSymbol(r) && r != '"' {
			tokenizer.word = append(tokenizer.word, r)
			continue
		}
		// A delimiter ends the pending word.
		err := tokenizer.flushWord()
		if err != nil {
			return nil, err
		}
		if isSymbol(r) {
			tokenizer.tokens = append(tokenizer.tokens, &Token{content: string(r), tp: SymbolTP})
		}
		if r == '"' {
			tokenizer.inString = true
		}
	}
	if tokenizer.inString {
		literal := string(tokenizer.literal)
		return nil, makeLexError(literal, "unterminated string constant \"%s", literal)
	}
	err := tokenizer.flushWord()
	if err != nil {
		return nil, err
	}
	return tokenizer.tokens, nil
}

func (tokenizer *Tokenizer) tokenStringRune(r rune) {
	if r != '"' {
		tokenizer.literal = append(tokenizer.literal, r)
		return
	}
	tokenizer.tokens = append(tokenizer.tokens, &Token{content: string(tokenizer.literal), tp: StringTP})
	tokenizer.literal, tokenizer.inString = nil, false
}

func (tokenizer *Tokenizer) flushWord() error {
	if len(tokenizer.word) == 0 {
		return nil
	}
	token, err := tokenWord(string(tokenizer.word))
	if err != nil {
		return err
	}
	tokenizer.tokens = append(tokenizer.tokens, token)
	tokenizer.word = tokenizer.word[:0]
	return nil
}

// tokenWord classifies a word standing by itself: keyword first, then integer
// constant, then identifier.
func tokenWord(word string) (*Token, error) {
	if keyWords[word] {
		return &Token{content: word, tp: KeywordTP}, nil
	}
	if v, err := strconv.ParseUint(word, 10, 16); err == nil {
		return &Token{content: strconv.FormatUint(v, 10), value: int(v), tp: IntegerTP}, nil
	}
	if isIdentifier(word) {
		return &Token{content: word, tp: IdentifierTP}, nil
	}
	return nil, makeLexError(word, "unable to tokenize '%s' - not an integer constant, a keyword nor an identifier", word)
}

func isIdentifier(word string) bool {
	if word == "" {
		return false
	}
	for i, r := range word {
		if i == 0 && !util.IsLetterOrUnderscore(r) {
			return false
		}
		if !util.IsLetterOrUnderscoreOrNumber(r) {
			return false
		}
	}
	return true
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.tokens, tokenizer.word, tokenizer.literal = nil, nil, nil
	tokenizer.inString = false
}
