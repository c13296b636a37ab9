package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeNode_Views(t *testing.T) {
	node, err := ParseRule(ExpressionRule, "a + b * c")
	require.Nil(t, err)
	require.Len(t, node.Items, 5)

	terms, ops := node.Nodes(), node.Tokens()
	require.Len(t, terms, 3)
	require.Len(t, ops, 2)
	// The k-th operator stands between the k-th and the (k+1)-th term.
	for i, op := range ops {
		assert.Same(t, node.Items[2*i+1].Token(), op)
		assert.Same(t, node.Items[2*i].Node(), terms[i])
		assert.Same(t, node.Items[2*i+2].Node(), terms[i+1])
	}
	assert.Equal(t, "+", ops[0].Content())
	assert.Equal(t, "*", ops[1].Content())
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		terms[0].Tokens()[0].Content(), terms[1].Tokens()[0].Content(), terms[2].Tokens()[0].Content(),
	})
}

func TestTreeNode_Slice(t *testing.T) {
	node, err := ParseRule(ExpressionRule, "1 + 2 - 3")
	require.Nil(t, err)
	prefix := node.Slice(0, 3)
	assert.Equal(t, ExpressionRule, prefix.Name)
	assert.Len(t, prefix.Items, 3)
	assert.Len(t, prefix.Nodes(), 2)
	// Adding to a slice leaves the original items untouched.
	prefix.AddToken(&Token{content: "*", tp: SymbolTP})
	assert.Equal(t, "-", node.Items[3].Token().Content())
	assert.Len(t, node.Items, 5)

	rest := node.Slice(2, 5)
	assert.Equal(t, "2", rest.Nodes()[0].Tokens()[0].Content())
	assert.Equal(t, "-", rest.Tokens()[0].Content())
}

func TestTreeNode_AddCommaRepeat(t *testing.T) {
	identifier := func(s *TokenStream) func(*TreeNode) error {
		return func(node *TreeNode) error {
			return node.take(s.Identifier())
		}
	}
	testData := []struct {
		Content    string
		AtLeastOne bool
		Items      int
		Pos        int
		Err        bool
	}{
		{Content: "a, b, c;", AtLeastOne: true, Items: 5, Pos: 5},
		{Content: "a;", AtLeastOne: true, Items: 1, Pos: 1},
		{Content: ";", AtLeastOne: false, Items: 0, Pos: 0},
		{Content: ";", AtLeastOne: true, Err: true},
		{Content: "a, ;", AtLeastOne: false, Err: true},
	}
	for _, data := range testData {
		s := newTestStream(t, data.Content)
		node := NewTreeNode("list")
		err := node.AddCommaRepeat(s, identifier(s), data.AtLeastOne)
		if data.Err {
			assert.NotNil(t, err, data.Content)
			continue
		}
		assert.Nil(t, err, data.Content)
		assert.Len(t, node.Items, data.Items, data.Content)
		assert.Equal(t, data.Pos, s.Pos(), data.Content)
	}
}

func TestTreeNode_AddRepeatNode(t *testing.T) {
	s := newTestStream(t, "var int a; var char b, c; let")
	parser := &Parser{stream: s}
	node := NewTreeNode(SubroutineBodyRule)
	err := node.AddRepeatNode(s, parser.parseVarDec)
	require.Nil(t, err)
	assert.Len(t, node.NodesNamed(VarDecRule), 2)
	token, err := s.Peek()
	require.Nil(t, err)
	assert.Equal(t, "let", token.Content())

	// A declaration broken after its first token is an error.
	s = newTestStream(t, "var int a; var 12;")
	parser = &Parser{stream: s}
	err = NewTreeNode(SubroutineBodyRule).AddRepeatNode(s, parser.parseVarDec)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestTreeNode_Walk(t *testing.T) {
	node, err := ParseRule(StatementsRule, "let a = b + c[d]; do f(x);")
	require.Nil(t, err)
	var names []string
	node.Walk(func(n *TreeNode) bool {
		names = append(names, n.Name)
		return n.Name != ExpressionRule
	})
	assert.Equal(t, []string{
		StatementsRule, LetStatementRule, ExpressionRule,
		DoStatementRule, ExpressionListRule, ExpressionRule,
	}, names)
}

func TestTreeNode_XML(t *testing.T) {
	node := NewTreeNode(ExpressionRule)
	term := NewTreeNode(TermRule)
	term.AddToken(&Token{content: "x", tp: IdentifierTP})
	node.AddNode(term)
	node.AddToken(&Token{content: "<", tp: SymbolTP})
	node.AddNode(NewTreeNode(TermRule))
	expected := `<expression>
  <term>
    <identifier> x </identifier>
  </term>
  <symbol> &lt; </symbol>
  <term>
  </term>
</expression>
`
	assert.Equal(t, expected, node.XML())
}
