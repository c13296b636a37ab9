package internal

import (
	"fmt"
	"strings"
)

// Symbol tables map every declared variable to its data type, storage kind and an index
// within that kind. A class table has no parent, the table of a subroutine chains to the
// table of its class.

type DataTypeKind int

const (
	BooleanType DataTypeKind = iota
	CharType
	IntType
	CustomType // a class name
)

type DataType struct {
	Kind DataTypeKind
	Name string // only set for CustomType.
}

func (dt DataType) String() string {
	switch dt.Kind {
	case BooleanType:
		return "boolean"
	case CharType:
		return "char"
	case IntType:
		return "int"
	}
	return dt.Name
}

func dataTypeOf(token *Token) (DataType, error) {
	switch {
	case token.IsKeyword("boolean"):
		return DataType{Kind: BooleanType}, nil
	case token.IsKeyword("char"):
		return DataType{Kind: CharType}, nil
	case token.IsKeyword("int"):
		return DataType{Kind: IntType}, nil
	case token.TP() == IdentifierTP:
		return DataType{Kind: CustomType, Name: token.Content()}, nil
	}
	return DataType{}, makeSemanticError("'%s' is not a data type", token.Content())
}

type SymbolKind int

const (
	StaticVar SymbolKind = iota
	FieldVar
	ArgumentVar
	LocalVar
)

var symbolKindNames = [...]string{
	StaticVar:   "static",
	FieldVar:    "field",
	ArgumentVar: "argument",
	LocalVar:    "local",
}

func (kind SymbolKind) String() string {
	return symbolKindNames[kind]
}

// Segment returns the vm memory segment holding variables of this kind.
func (kind SymbolKind) Segment() string {
	if kind == FieldVar {
		return "this"
	}
	return kind.String()
}

type Symbol struct {
	Name  string
	Type  DataType
	Kind  SymbolKind
	Index int
}

type SymbolTable struct {
	ClassName string
	parent    *SymbolTable
	symbols   []*Symbol
}

// newSymbolTable assigns indices in declaration order, counting every kind on its own.
func newSymbolTable(className string, parent *SymbolTable, symbols []*Symbol) (*SymbolTable, error) {
	var counters [len(symbolKindNames)]int
	seen := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		if seen[symbol.Name] {
			return nil, makeSemanticError("duplicate declaration of %s in %s", symbol.Name, className)
		}
		seen[symbol.Name] = true
		symbol.Index = counters[symbol.Kind]
		counters[symbol.Kind]++
	}
	T().Debugf("symbols: %d declared in scope of %s", len(symbols), className)
	return &SymbolTable{ClassName: className, parent: parent, symbols: symbols}, nil
}

// BuildClassSymbolTable collects the static and field variables of a class node.
func BuildClassSymbolTable(class *TreeNode) (*SymbolTable, error) {
	if class == nil || class.Name != ClassRule {
		return nil, makeSemanticError("node is not a class")
	}
	tokens := class.Tokens()
	if len(tokens) < 2 || tokens[1].TP() != IdentifierTP {
		return nil, makeSemanticError("class doesn't have a name")
	}
	var symbols []*Symbol
	for _, dec := range class.NodesNamed(ClassVarDecRule) {
		decSymbols, err := classVarSymbols(dec)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, decSymbols...)
	}
	return newSymbolTable(tokens[1].Content(), nil, symbols)
}

func classVarSymbols(dec *TreeNode) ([]*Symbol, error) {
	tokens := dec.Tokens()
	var kind SymbolKind
	switch {
	case len(tokens) == 0:
		return nil, makeSemanticError("invalid class variable declaration")
	case tokens[0].IsKeyword("static"):
		kind = StaticVar
	case tokens[0].IsKeyword("field"):
		kind = FieldVar
	default:
		return nil, makeSemanticError("class variable must be either static or field")
	}
	return declaredSymbols(tokens, kind)
}

// declaredSymbols builds one symbol per identifier of `kind type name [, name]* ;`.
func declaredSymbols(tokens []*Token, kind SymbolKind) ([]*Symbol, error) {
	if len(tokens) < 3 {
		return nil, makeSemanticError("invalid %s variable declaration", kind)
	}
	dataType, err := dataTypeOf(tokens[1])
	if err != nil {
		return nil, err
	}
	var symbols []*Symbol
	for _, token := range tokens[2:] {
		if token.TP() != IdentifierTP {
			continue
		}
		symbols = append(symbols, &Symbol{Name: token.Content(), Type: dataType, Kind: kind})
	}
	if len(symbols) == 0 {
		return nil, makeSemanticError("%s variable declaration without a name", kind)
	}
	return symbols, nil
}

// BuildSubroutineSymbolTable collects the arguments and local variables of a subroutineDec
// node. A method receives its instance as the hidden first argument `this`.
func BuildSubroutineSymbolTable(sub *TreeNode, className string, parent *SymbolTable) (*SymbolTable, error) {
	if sub == nil || sub.Name != SubroutineDecRule {
		return nil, makeSemanticError("node is not a subroutine declaration")
	}
	nodes := sub.Nodes()
	if len(nodes) != 2 || nodes[0].Name != ParameterListRule || nodes[1].Name != SubroutineBodyRule {
		return nil, makeSemanticError("invalid subroutine declaration")
	}
	var symbols []*Symbol
	if tokens := sub.Tokens(); len(tokens) > 0 && tokens[0].IsKeyword("method") {
		symbols = append(symbols, &Symbol{Name: "this", Type: DataType{Kind: CustomType, Name: className}, Kind: ArgumentVar})
	}
	params, err := parameterSymbols(nodes[0])
	if err != nil {
		return nil, err
	}
	symbols = append(symbols, params...)
	for _, dec := range nodes[1].NodesNamed(VarDecRule) {
		locals, err := declaredSymbols(dec.Tokens(), LocalVar)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, locals...)
	}
	return newSymbolTable(className, parent, symbols)
}

func parameterSymbols(params *TreeNode) ([]*Symbol, error) {
	var tokens []*Token
	for _, token := range params.Tokens() {
		if !token.IsSymbol(',') {
			tokens = append(tokens, token)
		}
	}
	if len(tokens)%2 != 0 {
		return nil, makeSemanticError("parameter list is invalid")
	}
	var symbols []*Symbol
	for i := 0; i < len(tokens); i += 2 {
		dataType, err := dataTypeOf(tokens[i])
		if err != nil {
			return nil, err
		}
		if tokens[i+1].TP() != IdentifierTP {
			return nil, makeSemanticError("parameter list is invalid")
		}
		symbols = append(symbols, &Symbol{Name: tokens[i+1].Content(), Type: dataType, Kind: ArgumentVar})
	}
	return symbols, nil
}

// Lookup searches this table first, then its parents.
func (table *SymbolTable) Lookup(name string) (*Symbol, error) {
	for t := table; t != nil; t = t.parent {
		for _, symbol := range t.symbols {
			if symbol.Name == name {
				return symbol, nil
			}
		}
	}
	return nil, makeSemanticError("undefined symbol %s", name)
}

func (table *SymbolTable) Symbols() []*Symbol {
	return table.symbols
}

func (table *SymbolTable) Parent() *SymbolTable {
	return table.parent
}

func (table *SymbolTable) String() string {
	var sb strings.Builder
	sb.WriteString("symbol table of " + table.ClassName + "\n")
	for _, symbol := range table.symbols {
		sb.WriteString(fmt.Sprintf("%s %d %s %s\n", symbol.Kind, symbol.Index, symbol.Type, symbol.Name))
	}
	return sb.String()
}
