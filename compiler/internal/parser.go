package internal

import (
	"fmt"
)

// A recursive descent parser for jack. Every grammar rule is a method producing a TreeNode
// labeled with the rule name:
//
// class          := 'class' identifier '{' classVarDec* subroutineDec* '}'
// classVarDec    := ('static'|'field') type identifier (',' identifier)* ';'
// type           := 'int' | 'char' | 'boolean' | identifier
// subroutineDec  := ('constructor'|'function'|'method') ('void'|type) identifier '(' parameterList ')' subroutineBody
// parameterList  := (type identifier (',' type identifier)*)?
// subroutineBody := '{' varDec* statements '}'
// varDec         := 'var' type identifier (',' identifier)* ';'
// statements     := statement*
// statement      := letStatement | ifStatement | whileStatement | doStatement | returnStatement
// letStatement   := 'let' identifier ('[' expression ']')? '=' expression ';'
// ifStatement    := 'if' '(' expression ')' '{' statements '}' ('else' '{' statements '}')?
// whileStatement := 'while' '(' expression ')' '{' statements '}'
// doStatement    := 'do' identifier ('.' identifier)? '(' expressionList ')' ';'
// returnStatement:= 'return' expression? ';'
// expression     := term (op term)*
// term           := integerConstant | stringConstant | 'true' | 'false' | 'null' | 'this'
//                 | identifier ('[' expression ']' | '(' expressionList ')' | '.' identifier '(' expressionList ')')?
//                 | '(' expression ')' | ('-'|'~') term
// expressionList := (expression (',' expression)*)?
//
// The type and statement rules do not add a node of their own.

type Parser struct {
	stream *TokenStream
}

func NewParser(tokens []*Token) *Parser {
	return &Parser{stream: NewTokenStream(tokens)}
}

var ruleParsers = map[string]func(*Parser) (*TreeNode, error){
	ClassRule:           (*Parser).parseClass,
	ClassVarDecRule:     (*Parser).parseClassVarDec,
	SubroutineDecRule:   (*Parser).parseSubroutineDec,
	ParameterListRule:   (*Parser).parseParameterList,
	SubroutineBodyRule:  (*Parser).parseSubroutineBody,
	VarDecRule:          (*Parser).parseVarDec,
	StatementsRule:      (*Parser).parseStatements,
	"statement":         (*Parser).parseStatement,
	LetStatementRule:    (*Parser).parseLetStatement,
	IfStatementRule:     (*Parser).parseIfStatement,
	WhileStatementRule:  (*Parser).parseWhileStatement,
	DoStatementRule:     (*Parser).parseDoStatement,
	ReturnStatementRule: (*Parser).parseReturnStatement,
	ExpressionRule:      (*Parser).parseExpression,
	TermRule:            (*Parser).parseTerm,
	ExpressionListRule:  (*Parser).parseExpressionList,
}

// Parse tokenizes content and parses it as one class.
func Parse(content string) (*TreeNode, error) {
	return ParseRule(ClassRule, content)
}

func ParseTokens(tokens []*Token) (*TreeNode, error) {
	return parseTokensAs(ClassRule, tokens)
}

// ParseRule parses the whole content as an instance of the given grammar rule.
func ParseRule(rule string, content string) (*TreeNode, error) {
	tokens, err := Tokenize(content)
	if err != nil {
		return nil, err
	}
	return parseTokensAs(rule, tokens)
}

func parseTokensAs(rule string, tokens []*Token) (*TreeNode, error) {
	parse, ok := ruleParsers[rule]
	if !ok {
		return nil, fmt.Errorf("Parser: unknown grammar rule '%s'", rule)
	}
	parser := NewParser(tokens)
	node, err := parse(parser)
	if err != nil {
		return nil, err
	}
	if parser.stream.HasRemainTokens() {
		token, _ := parser.stream.Peek()
		return nil, makeParseError(fmt.Sprintf("end of %s, found %s", rule, token.Content()), ErrTokenMismatch)
	}
	T().Debugf("parser: %d tokens parsed as %s", len(tokens), rule)
	return node, nil
}

func ParseIntoXML(content string) (string, error) {
	node, err := Parse(content)
	if err != nil {
		return "", err
	}
	return node.XML(), nil
}

func TokenizeIntoXML(content string) (string, error) {
	tokens, err := Tokenize(content)
	if err != nil {
		return "", err
	}
	return TokensXML(tokens), nil
}

// take adds a successfully matched token to node.
func (node *TreeNode) take(token *Token, err error) error {
	if err != nil {
		return err
	}
	node.AddToken(token)
	return nil
}

func (node *TreeNode) takeNode(child *TreeNode, err error) error {
	if err != nil {
		return err
	}
	node.AddNode(child)
	return nil
}

// takeSymbols matches every symbol of symbols in order.
func (parser *Parser) takeSymbols(node *TreeNode, symbols string) error {
	for _, symbol := range symbols {
		err := node.take(parser.stream.Symbol(symbol))
		if err != nil {
			return err
		}
	}
	return nil
}

func (parser *Parser) parseClass() (*TreeNode, error) {
	node := NewTreeNode(ClassRule)
	if err := node.take(parser.stream.Keyword("class")); err != nil {
		return nil, err
	}
	if err := node.take(parser.stream.Identifier()); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, "{"); err != nil {
		return nil, err
	}
	if err := node.AddRepeatNode(parser.stream, parser.parseClassVarDec); err != nil {
		return nil, err
	}
	if err := node.AddRepeatNode(parser.stream, parser.parseSubroutineDec); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, "}"); err != nil {
		return nil, err
	}
	return node, nil
}

// Class var declaration like: [static|field] [int|char|boolean|className] varName [,varName]* ;
func (parser *Parser) parseClassVarDec() (*TreeNode, error) {
	node := NewTreeNode(ClassVarDecRule)
	if err := node.take(parser.stream.Keywords("static", "field")); err != nil {
		return nil, err
	}
	if err := parser.parseNameList(node); err != nil {
		return nil, err
	}
	return node, nil
}

// parseNameList matches `type varName [,varName]* ;` shared by class and local var declarations.
func (parser *Parser) parseNameList(node *TreeNode) error {
	if err := node.take(parser.parseType()); err != nil {
		return err
	}
	err := node.AddCommaRepeat(parser.stream, func(n *TreeNode) error {
		return n.take(parser.stream.Identifier())
	}, true)
	if err != nil {
		return err
	}
	return parser.takeSymbols(node, ";")
}

func isTypeToken(t *Token) bool {
	return t.IsKeyword("int") || t.IsKeyword("char") || t.IsKeyword("boolean") || t.tp == IdentifierTP
}

func (parser *Parser) parseType() (*Token, error) {
	return parser.stream.expect("type", isTypeToken)
}

func (parser *Parser) parseSubroutineDec() (*TreeNode, error) {
	node := NewTreeNode(SubroutineDecRule)
	if err := node.take(parser.stream.Keywords("constructor", "function", "method")); err != nil {
		return nil, err
	}
	returnType := func(t *Token) bool { return t.IsKeyword("void") || isTypeToken(t) }
	if err := node.take(parser.stream.expect("'void' or type", returnType)); err != nil {
		return nil, err
	}
	if err := node.take(parser.stream.Identifier()); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, "("); err != nil {
		return nil, err
	}
	if err := node.takeNode(parser.parseParameterList()); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, ")"); err != nil {
		return nil, err
	}
	if err := node.takeNode(parser.parseSubroutineBody()); err != nil {
		return nil, err
	}
	return node, nil
}

func (parser *Parser) parseParameterList() (*TreeNode, error) {
	node := NewTreeNode(ParameterListRule)
	err := node.AddCommaRepeat(parser.stream, func(n *TreeNode) error {
		if err := n.take(parser.parseType()); err != nil {
			return err
		}
		return n.take(parser.stream.Identifier())
	}, false)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (parser *Parser) parseSubroutineBody() (*TreeNode, error) {
	node := NewTreeNode(SubroutineBodyRule)
	if err := parser.takeSymbols(node, "{"); err != nil {
		return nil, err
	}
	if err := node.AddRepeatNode(parser.stream, parser.parseVarDec); err != nil {
		return nil, err
	}
	if err := node.takeNode(parser.parseStatements()); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, "}"); err != nil {
		return nil, err
	}
	return node, nil
}

func (parser *Parser) parseVarDec() (*TreeNode, error) {
	node := NewTreeNode(VarDecRule)
	if err := node.take(parser.stream.Keyword("var")); err != nil {
		return nil, err
	}
	if err := parser.parseNameList(node); err != nil {
		return nil, err
	}
	return node, nil
}

func (parser *Parser) parseStatements() (*TreeNode, error) {
	node := NewTreeNode(StatementsRule)
	if err := node.AddRepeatNode(parser.stream, parser.parseStatement); err != nil {
		return nil, err
	}
	return node, nil
}

// parseStatement dispatches on the leading keyword. A token starting no statement is an
// error that leaves the stream untouched.
func (parser *Parser) parseStatement() (*TreeNode, error) {
	token, err := parser.stream.Peek()
	if err != nil {
		return nil, makeParseError("statement", err)
	}
	if token.TP() == KeywordTP {
		switch token.Content() {
		case "let":
			return parser.parseLetStatement()
		case "if":
			return parser.parseIfStatement()
		case "while":
			return parser.parseWhileStatement()
		case "do":
			return parser.parseDoStatement()
		case "return":
			return parser.parseReturnStatement()
		}
	}
	return nil, makeParseError("statement", ErrTokenMismatch)
}

func (parser *Parser) parseLetStatement() (*TreeNode, error) {
	node := NewTreeNode(LetStatementRule)
	if err := node.take(parser.stream.Keyword("let")); err != nil {
		return nil, err
	}
	if err := node.take(parser.stream.Identifier()); err != nil {
		return nil, err
	}
	// Optional array index.
	if err := node.take(parser.stream.Symbol('[')); err == nil {
		if err := node.takeNode(parser.parseExpression()); err != nil {
			return nil, err
		}
		if err := parser.takeSymbols(node, "]"); err != nil {
			return nil, err
		}
	}
	if err := parser.takeSymbols(node, "="); err != nil {
		return nil, err
	}
	if err := node.takeNode(parser.parseExpression()); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, ";"); err != nil {
		return nil, err
	}
	return node, nil
}

// if (condition) { statements } else { statements }
func (parser *Parser) parseIfStatement() (*TreeNode, error) {
	node := NewTreeNode(IfStatementRule)
	if err := node.take(parser.stream.Keyword("if")); err != nil {
		return nil, err
	}
	if err := parser.parseConditionBlock(node); err != nil {
		return nil, err
	}
	if err := node.take(parser.stream.Keyword("else")); err == nil {
		if err := parser.parseBlock(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (parser *Parser) parseWhileStatement() (*TreeNode, error) {
	node := NewTreeNode(WhileStatementRule)
	if err := node.take(parser.stream.Keyword("while")); err != nil {
		return nil, err
	}
	if err := parser.parseConditionBlock(node); err != nil {
		return nil, err
	}
	return node, nil
}

// parseConditionBlock matches `( expression ) { statements }`.
func (parser *Parser) parseConditionBlock(node *TreeNode) error {
	if err := parser.takeSymbols(node, "("); err != nil {
		return err
	}
	if err := node.takeNode(parser.parseExpression()); err != nil {
		return err
	}
	if err := parser.takeSymbols(node, ")"); err != nil {
		return err
	}
	return parser.parseBlock(node)
}

func (parser *Parser) parseBlock(node *TreeNode) error {
	if err := parser.takeSymbols(node, "{"); err != nil {
		return err
	}
	if err := node.takeNode(parser.parseStatements()); err != nil {
		return err
	}
	return parser.takeSymbols(node, "}")
}

func (parser *Parser) parseDoStatement() (*TreeNode, error) {
	node := NewTreeNode(DoStatementRule)
	if err := node.take(parser.stream.Keyword("do")); err != nil {
		return nil, err
	}
	if err := node.take(parser.stream.Identifier()); err != nil {
		return nil, err
	}
	if err := node.take(parser.stream.Symbol('.')); err == nil {
		if err := node.take(parser.stream.Identifier()); err != nil {
			return nil, err
		}
	}
	if err := parser.parseCallArguments(node); err != nil {
		return nil, err
	}
	if err := parser.takeSymbols(node, ";"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseCallArguments matches `( expressionList )`.
func (parser *Parser) parseCallArguments(node *TreeNode) error {
	if err := parser.takeSymbols(node, "("); err != nil {
		return err
	}
	if err := node.takeNode(parser.parseExpressionList()); err != nil {
		return err
	}
	return parser.takeSymbols(node, ")")
}

func (parser *Parser) parseReturnStatement() (*TreeNode, error) {
	node := NewTreeNode(ReturnStatementRule)
	if err := node.take(parser.stream.Keyword("return")); err != nil {
		return nil, err
	}
	start := parser.stream.Pos()
	expression, err := parser.parseExpression()
	if err == nil {
		node.AddNode(expression)
	} else if parser.stream.Pos() != start {
		return nil, err
	}
	if err := parser.takeSymbols(node, ";"); err != nil {
		return nil, err
	}
	return node, nil
}

const binaryOps = "+-*/&|<>="

func isBinaryOp(t *Token) bool {
	if t.tp != SymbolTP {
		return false
	}
	for _, op := range binaryOps {
		if t.IsSymbol(op) {
			return true
		}
	}
	return false
}

// parseExpression produces items alternating term, op, term, ... and always starting
// with a term node.
func (parser *Parser) parseExpression() (*TreeNode, error) {
	node := NewTreeNode(ExpressionRule)
	if err := node.takeNode(parser.parseTerm()); err != nil {
		return nil, err
	}
	for {
		op, err := parser.stream.expect("operator", isBinaryOp)
		if err != nil {
			return node, nil
		}
		node.AddToken(op)
		if err := node.takeNode(parser.parseTerm()); err != nil {
			return nil, err
		}
	}
}

func isConstantTerm(t *Token) bool {
	switch t.tp {
	case IntegerTP, StringTP:
		return true
	case KeywordTP:
		return t.content == "true" || t.content == "false" || t.content == "null" || t.content == "this"
	}
	return false
}

func (parser *Parser) parseTerm() (*TreeNode, error) {
	node := NewTreeNode(TermRule)
	s := parser.stream
	if err := node.take(s.expect("term", isConstantTerm)); err == nil {
		return node, nil
	}
	if err := node.take(s.Identifier()); err == nil {
		if err := parser.parseIdentifierSuffix(node); err != nil {
			return nil, err
		}
		return node, nil
	}
	if err := node.take(s.Symbol('(')); err == nil {
		if err := node.takeNode(parser.parseExpression()); err != nil {
			return nil, err
		}
		if err := parser.takeSymbols(node, ")"); err != nil {
			return nil, err
		}
		return node, nil
	}
	unary := func(t *Token) bool { return t.IsSymbol('-') || t.IsSymbol('~') }
	if err := node.take(s.expect("unary operator", unary)); err == nil {
		if err := node.takeNode(parser.parseTerm()); err != nil {
			return nil, err
		}
		return node, nil
	}
	if _, err := s.Peek(); err != nil {
		return nil, makeParseError("term", err)
	}
	return nil, makeParseError("term", ErrTokenMismatch)
}

// parseIdentifierSuffix looks one token past a leading identifier to tell an array access,
// a direct call and a qualified call from a plain variable.
func (parser *Parser) parseIdentifierSuffix(node *TreeNode) error {
	next, err := parser.stream.Peek()
	if err != nil {
		return nil
	}
	switch {
	case next.IsSymbol('['):
		if err := parser.takeSymbols(node, "["); err != nil {
			return err
		}
		if err := node.takeNode(parser.parseExpression()); err != nil {
			return err
		}
		return parser.takeSymbols(node, "]")
	case next.IsSymbol('('):
		return parser.parseCallArguments(node)
	case next.IsSymbol('.'):
		if err := parser.takeSymbols(node, "."); err != nil {
			return err
		}
		if err := node.take(parser.stream.Identifier()); err != nil {
			return err
		}
		return parser.parseCallArguments(node)
	}
	return nil
}

func (parser *Parser) parseExpressionList() (*TreeNode, error) {
	node := NewTreeNode(ExpressionListRule)
	err := node.AddCommaRepeat(parser.stream, func(n *TreeNode) error {
		return n.takeNode(parser.parseExpression())
	}, false)
	if err != nil {
		return nil, err
	}
	return node, nil
}
