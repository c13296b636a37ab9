package internal

import (
	"strings"
)

// In this file, we defined the syntax tree of jack programs. Instead of one struct per grammar rule,
// every rule produces a TreeNode labeled with the rule name, holding the tokens and sub nodes it
// matched in source order. The shape of each label is fixed by the grammar in parser.go.

const (
	ClassRule           = "class"
	ClassVarDecRule     = "classVarDec"
	SubroutineDecRule   = "subroutineDec"
	ParameterListRule   = "parameterList"
	SubroutineBodyRule  = "subroutineBody"
	VarDecRule          = "varDec"
	StatementsRule      = "statements"
	LetStatementRule    = "letStatement"
	IfStatementRule     = "ifStatement"
	WhileStatementRule  = "whileStatement"
	DoStatementRule     = "doStatement"
	ReturnStatementRule = "returnStatement"
	ExpressionRule      = "expression"
	TermRule            = "term"
	ExpressionListRule  = "expressionList"
)

// TreeItem is either a token or a nested node.
type TreeItem struct {
	token *Token
	node  *TreeNode
}

func (item TreeItem) Token() *Token {
	return item.token
}

func (item TreeItem) Node() *TreeNode {
	return item.node
}

func (item TreeItem) IsNode() bool {
	return item.node != nil
}

type TreeNode struct {
	Name  string
	Items []TreeItem
}

func NewTreeNode(name string) *TreeNode {
	return &TreeNode{Name: name}
}

func (node *TreeNode) AddToken(token *Token) {
	node.Items = append(node.Items, TreeItem{token: token})
}

func (node *TreeNode) AddNode(child *TreeNode) {
	node.Items = append(node.Items, TreeItem{node: child})
}

// AddCommaRepeat applies f once, then once more after every ',' it finds, adding the commas
// to node. When atLeastOne is false, a first application failing without consuming any token
// leaves an empty list.
func (node *TreeNode) AddCommaRepeat(s *TokenStream, f func(*TreeNode) error, atLeastOne bool) error {
	start := s.Pos()
	err := f(node)
	if err != nil {
		if atLeastOne || s.Pos() != start {
			return err
		}
		return nil
	}
	for {
		comma, err := s.Symbol(',')
		if err != nil {
			return nil
		}
		node.AddToken(comma)
		err = f(node)
		if err != nil {
			return err
		}
	}
}

// AddRepeatNode adds the nodes produced by rule until it fails. A failure without any consumed
// token ends the repetition, a failure in the middle of a construct is returned.
func (node *TreeNode) AddRepeatNode(s *TokenStream, rule func() (*TreeNode, error)) error {
	for {
		start := s.Pos()
		child, err := rule()
		if err != nil {
			if s.Pos() != start {
				return err
			}
			return nil
		}
		node.AddNode(child)
	}
}

// Slice returns a view of items[from:to] under the same label.
func (node *TreeNode) Slice(from, to int) *TreeNode {
	return &TreeNode{Name: node.Name, Items: node.Items[from:to:to]}
}

// Tokens returns only the tokens of node, in order.
func (node *TreeNode) Tokens() []*Token {
	var tokens []*Token
	for _, item := range node.Items {
		if !item.IsNode() {
			tokens = append(tokens, item.token)
		}
	}
	return tokens
}

// Nodes returns only the sub nodes of node, in order.
func (node *TreeNode) Nodes() []*TreeNode {
	var nodes []*TreeNode
	for _, item := range node.Items {
		if item.IsNode() {
			nodes = append(nodes, item.node)
		}
	}
	return nodes
}

func (node *TreeNode) NodesNamed(name string) []*TreeNode {
	var nodes []*TreeNode
	for _, child := range node.Nodes() {
		if child.Name == name {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// Walk visits node and its descendants in pre-order. Children of a node are skipped
// when fn returns false for it.
func (node *TreeNode) Walk(fn func(*TreeNode) bool) {
	if !fn(node) {
		return
	}
	for _, child := range node.Nodes() {
		child.Walk(fn)
	}
}

func (node *TreeNode) XML() string {
	var sb strings.Builder
	node.writeXML(&sb, 0)
	return sb.String()
}

func (node *TreeNode) writeXML(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent + "<" + node.Name + ">\n")
	for _, item := range node.Items {
		if item.IsNode() {
			item.node.writeXML(sb, depth+1)
			continue
		}
		sb.WriteString(indent + "  " + item.token.XML() + "\n")
	}
	sb.WriteString(indent + "</" + node.Name + ">\n")
}
