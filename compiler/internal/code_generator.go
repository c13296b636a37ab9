package internal

import (
	"fmt"
	"strings"
)

var binaryOpCodes = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "call Math.multiply",
	"/": "call Math.divide",
	"&": "and",
	"|": "or",
	"<": "lt",
	">": "gt",
	"=": "eq",
}

// CodeGenerator translates expression nodes into vm instructions, resolving variables
// through symbols.
type CodeGenerator struct {
	symbols *SymbolTable
}

func NewCodeGenerator(symbols *SymbolTable) *CodeGenerator {
	return &CodeGenerator{symbols: symbols}
}

// EmitExpression returns the instructions of expr joined by newlines.
func (generator *CodeGenerator) EmitExpression(expr *TreeNode) (string, error) {
	codes, err := generator.Expression(expr)
	if err != nil {
		return "", err
	}
	return strings.Join(codes, "\n"), nil
}

// Expression emits `term op term op term ...` left associatively: for 1 + 2 - 3 the
// generated code is 1 2 add 3 sub. Every prefix of the items ending with a term is an
// expression itself, so the last operator applies to the prefix and the last term.
func (generator *CodeGenerator) Expression(expr *TreeNode) ([]string, error) {
	items := expr.Items
	if len(items) == 0 {
		return nil, makeCodegenError("invalid expression term")
	}
	if !items[0].IsNode() || len(items)%2 == 0 {
		return nil, makeCodegenError("missing operand between two terms")
	}
	if len(items) == 1 {
		return generator.Term(items[0].Node())
	}
	last, op := items[len(items)-1], items[len(items)-2]
	if op.IsNode() || !last.IsNode() {
		return nil, makeCodegenError("missing operand between two terms")
	}
	opCode, ok := binaryOpCodes[op.Token().Content()]
	if !ok || op.Token().TP() != SymbolTP {
		return nil, makeCodegenError("missing operand between two terms")
	}
	codes, err := generator.Expression(expr.Slice(0, len(items)-2))
	if err != nil {
		return nil, err
	}
	right, err := generator.Term(last.Node())
	if err != nil {
		return nil, err
	}
	codes = append(codes, right...)
	return append(codes, opCode), nil
}

// ExpressionList concatenates the code of every expression of the list.
func (generator *CodeGenerator) ExpressionList(list *TreeNode) ([]string, error) {
	var codes []string
	for _, expr := range list.NodesNamed(ExpressionRule) {
		exprCodes, err := generator.Expression(expr)
		if err != nil {
			return nil, err
		}
		codes = append(codes, exprCodes...)
	}
	return codes, nil
}

func (generator *CodeGenerator) Term(term *TreeNode) ([]string, error) {
	if term == nil || len(term.Items) == 0 || term.Items[0].IsNode() {
		return nil, makeCodegenError("invalid expression term")
	}
	tokens, nodes := term.Tokens(), term.Nodes()
	first := tokens[0]
	switch first.TP() {
	case IntegerTP:
		return []string{fmt.Sprintf("push constant %d", first.IntValue())}, nil
	case StringTP:
		return stringConstant(first.Content()), nil
	case IdentifierTP:
		return generator.identifierTerm(tokens, nodes)
	case KeywordTP:
		switch first.Content() {
		case "null", "false":
			return []string{"push constant 0"}, nil
		case "true":
			return []string{"push constant 1", "neg"}, nil
		case "this":
			return []string{"push pointer 0"}, nil
		}
	case SymbolTP:
		switch {
		case (first.IsSymbol('-') || first.IsSymbol('~')) && len(nodes) == 1:
			codes, err := generator.Term(nodes[0])
			if err != nil {
				return nil, err
			}
			if first.IsSymbol('-') {
				return append(codes, "neg"), nil
			}
			return append(codes, "not"), nil
		case first.IsSymbol('(') && len(nodes) == 1:
			return generator.Expression(nodes[0])
		}
	}
	return nil, makeCodegenError("invalid expression term")
}

// stringConstant builds a String object holding s one character at a time.
func stringConstant(s string) []string {
	runes := []rune(s)
	codes := []string{fmt.Sprintf("push constant %d", len(runes)), "call String.new"}
	for _, r := range runes {
		codes = append(codes, fmt.Sprintf("push constant %d", r), "call String.appendChar")
	}
	return codes
}

// identifierTerm handles a variable, an array access `a[i]`, a call `f(args)` on the
// current object and a call `x.f(args)` on a variable or a class.
func (generator *CodeGenerator) identifierTerm(tokens []*Token, nodes []*TreeNode) ([]string, error) {
	name := tokens[0].Content()
	if len(tokens) == 1 {
		return generator.pushVariable(name)
	}
	switch {
	case tokens[1].IsSymbol('[') && len(nodes) == 1:
		codes, err := generator.pushVariable(name)
		if err != nil {
			return nil, err
		}
		index, err := generator.Expression(nodes[0])
		if err != nil {
			return nil, err
		}
		codes = append(codes, index...)
		return append(codes, "add", "pop pointer 1", "push that 0"), nil
	case tokens[1].IsSymbol('(') && len(nodes) == 1:
		codes := []string{"push pointer 0"}
		return generator.call(codes, generator.className()+"."+name, nodes[0], 1)
	case tokens[1].IsSymbol('.') && len(tokens) > 2 && len(nodes) == 1:
		subroutine := tokens[2].Content()
		symbol, err := generator.symbols.Lookup(name)
		if err != nil {
			// Not a variable, so a function or constructor of class `name`.
			return generator.call(nil, name+"."+subroutine, nodes[0], 0)
		}
		if symbol.Type.Kind != CustomType {
			return nil, makeCodegenError("cannot call %s on %s of type %s", subroutine, name, symbol.Type)
		}
		codes := []string{pushSymbol(symbol)}
		return generator.call(codes, symbol.Type.Name+"."+subroutine, nodes[0], 1)
	}
	return nil, makeCodegenError("invalid expression term")
}

func (generator *CodeGenerator) call(codes []string, routine string, args *TreeNode, hidden int) ([]string, error) {
	argCodes, err := generator.ExpressionList(args)
	if err != nil {
		return nil, err
	}
	codes = append(codes, argCodes...)
	n := len(args.NodesNamed(ExpressionRule)) + hidden
	return append(codes, fmt.Sprintf("call %s %d", routine, n)), nil
}

func (generator *CodeGenerator) pushVariable(name string) ([]string, error) {
	symbol, err := generator.symbols.Lookup(name)
	if err != nil {
		return nil, err
	}
	T().Debugf("codegen: %s resolved to %s %d", name, symbol.Kind, symbol.Index)
	return []string{pushSymbol(symbol)}, nil
}

func pushSymbol(symbol *Symbol) string {
	return fmt.Sprintf("push %s %d", symbol.Kind.Segment(), symbol.Index)
}

func (generator *CodeGenerator) className() string {
	if generator.symbols == nil {
		return ""
	}
	return generator.symbols.ClassName
}
