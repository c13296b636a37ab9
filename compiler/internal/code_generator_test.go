package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Constants(t *testing.T) {
	testData := []struct {
		Content  string
		Expected []string
	}{
		{Content: "1 + 2", Expected: []string{"push constant 1", "push constant 2", "add"}},
		{Content: "-5", Expected: []string{"push constant 5", "neg"}},
		{Content: "true", Expected: []string{"push constant 1", "neg"}},
		{Content: "false", Expected: []string{"push constant 0"}},
		{Content: "null", Expected: []string{"push constant 0"}},
		{Content: "~false", Expected: []string{"push constant 0", "not"}},
		{Content: `"ab"`, Expected: []string{
			"push constant 2", "call String.new",
			"push constant 97", "call String.appendChar",
			"push constant 98", "call String.appendChar",
		}},
		{Content: `""`, Expected: []string{"push constant 0", "call String.new"}},
		{Content: "1 + 2 - 3", Expected: []string{
			"push constant 1", "push constant 2", "add", "push constant 3", "sub",
		}},
		{Content: "8 / 4 * 2", Expected: []string{
			"push constant 8", "push constant 4", "call Math.divide", "push constant 2", "call Math.multiply",
		}},
		{Content: "1 + (2 * 3)", Expected: []string{
			"push constant 1", "push constant 2", "push constant 3", "call Math.multiply", "add",
		}},
		{Content: "1 < 2 & (3 > 4) | (5 = 5)", Expected: []string{
			"push constant 1", "push constant 2", "lt",
			"push constant 3", "push constant 4", "gt", "and",
			"push constant 5", "push constant 5", "eq", "or",
		}},
		{Content: "this", Expected: []string{"push pointer 0"}},
	}
	generator := NewCodeGenerator(nil)
	for _, data := range testData {
		expr, err := ParseRule(ExpressionRule, data.Content)
		require.Nil(t, err, data.Content)
		codes, err := generator.Expression(expr)
		assert.Nil(t, err, data.Content)
		assert.Equal(t, data.Expected, codes, data.Content)
	}
}

func TestCodeGenerator_EmitExpression(t *testing.T) {
	expr, err := ParseRule(ExpressionRule, "1 + 2")
	require.Nil(t, err)
	code, err := NewCodeGenerator(nil).EmitExpression(expr)
	require.Nil(t, err)
	assert.Equal(t, "push constant 1\npush constant 2\nadd", code)
}

func TestCodeGenerator_Variables(t *testing.T) {
	class, classTable := buildTestTables(t)
	method := subroutineTable(t, class, classTable, 1)
	testData := []struct {
		Content  string
		Expected []string
	}{
		{Content: "this", Expected: []string{"push pointer 0"}},
		{Content: "count", Expected: []string{"push static 0"}},
		{Content: "y", Expected: []string{"push this 1"}},
		{Content: "b", Expected: []string{"push argument 2"}},
		{Content: "dy", Expected: []string{"push local 1"}},
		{Content: "dx - a", Expected: []string{"push local 0", "push argument 1", "sub"}},
		{Content: "dx[y + 1]", Expected: []string{
			"push local 0", "push this 1", "push constant 1", "add", "add", "pop pointer 1", "push that 0",
		}},
		{Content: "distance(1, 2)", Expected: []string{
			"push pointer 0", "push constant 1", "push constant 2", "call Point.distance 3",
		}},
		{Content: "other.distance(a)", Expected: []string{
			"push local 2", "push argument 1", "call Point.distance 2",
		}},
		{Content: "origin.getX()", Expected: []string{"push static 1", "call Point.getX 1"}},
		{Content: "Math.max(a, -b)", Expected: []string{
			"push argument 1", "push argument 2", "neg", "call Math.max 2",
		}},
		{Content: "Sys.halt()", Expected: []string{"call Sys.halt 0"}},
	}
	generator := NewCodeGenerator(method)
	for _, data := range testData {
		expr, err := ParseRule(ExpressionRule, data.Content)
		require.Nil(t, err, data.Content)
		codes, err := generator.Expression(expr)
		assert.Nil(t, err, data.Content)
		assert.Equal(t, data.Expected, codes, data.Content)
	}
}

func TestCodeGenerator_UndefinedVariable(t *testing.T) {
	class, classTable := buildTestTables(t)
	function := subroutineTable(t, class, classTable, 2)
	expr, err := ParseRule(ExpressionRule, "a + missing")
	require.Nil(t, err)
	_, err = NewCodeGenerator(function).Expression(expr)
	var symbolErr *SymbolError
	require.True(t, errors.As(err, &symbolErr))
	assert.Equal(t, "SymbolTable: undefined symbol missing", err.Error())

	// A method call on a primitive variable.
	expr, err = ParseRule(ExpressionRule, "a.f()")
	require.Nil(t, err)
	_, err = NewCodeGenerator(function).Expression(expr)
	var codegenErr *CodegenError
	assert.True(t, errors.As(err, &codegenErr))
}

func TestCodeGenerator_MalformedExpression(t *testing.T) {
	one := &Token{content: "1", value: 1, tp: IntegerTP}
	plus := &Token{content: "+", tp: SymbolTP}
	term := NewTreeNode(TermRule)
	term.AddToken(one)

	leadingOp := NewTreeNode(ExpressionRule)
	leadingOp.AddToken(plus)
	leadingOp.AddNode(term)

	danglingOp := NewTreeNode(ExpressionRule)
	danglingOp.AddNode(term)
	danglingOp.AddToken(plus)

	twoTerms := NewTreeNode(ExpressionRule)
	twoTerms.AddNode(term)
	twoTerms.AddNode(term)
	twoTerms.AddNode(term)

	notAnOp := NewTreeNode(ExpressionRule)
	notAnOp.AddNode(term)
	notAnOp.AddToken(&Token{content: "~", tp: SymbolTP})
	notAnOp.AddNode(term)

	generator := NewCodeGenerator(nil)
	for _, expr := range []*TreeNode{leadingOp, danglingOp, twoTerms, notAnOp} {
		codes, err := generator.Expression(expr)
		assert.Nil(t, codes)
		var codegenErr *CodegenError
		require.True(t, errors.As(err, &codegenErr))
		assert.Equal(t, "CodeGenerator: missing operand between two terms", err.Error())
	}
}

func TestCodeGenerator_InvalidTerm(t *testing.T) {
	testData := []*TreeNode{
		NewTreeNode(TermRule),
		{Name: TermRule, Items: []TreeItem{{token: &Token{content: ";", tp: SymbolTP}}}},
		{Name: TermRule, Items: []TreeItem{{token: &Token{content: "class", tp: KeywordTP}}}},
		{Name: TermRule, Items: []TreeItem{{node: NewTreeNode(TermRule)}}},
	}
	generator := NewCodeGenerator(nil)
	for _, term := range testData {
		_, err := generator.Term(term)
		require.NotNil(t, err)
		assert.Equal(t, "CodeGenerator: invalid expression term", err.Error())
	}
}
