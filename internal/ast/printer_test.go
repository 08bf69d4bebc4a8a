package ast

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterLiterals(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"integer", &IntegerLit{Value: big.NewInt(-15)}, "-15"},
		{"float", &FloatLit{Value: 12}, "12.0"},
		{"negative zero", &FloatLit{Value: math.Copysign(0, -1)}, "-0.0"},
		{"fraction", &FloatLit{Value: 1.5}, "1.5"},
		{"infinity", &FloatLit{Value: math.Inf(1)}, "Infinity"},
		{"string", &StringLit{Value: "a\nb"}, `"a\nb"`},
		{"symbol", &SymbolLit{Name: "foo?"}, ":foo?"},
		{"command", &CommandLit{Value: "ls"}, `(xstr "ls")`},
		{"nil", &NilLit{}, "nil"},
		{"true", &BoolLit{Value: true}, "true"},
		{"self", &SelfExpr{}, "self"},
		{"placeholder", &Placeholder{}, "<placeholder>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.node.String())
		})
	}
}

func TestPrinterCompound(t *testing.T) {
	a := &Ident{Kind: LocalVar, Name: "a"}
	b := &Ident{Kind: LocalVar, Name: "b"}

	interp := &InterpolatedString{Parts: []Expr{&StringLit{Value: "x"}, a, &StringLit{Value: "y"}}}
	assert.Equal(t, `(dstr "x" a "y")`, interp.String())

	logical := &LogicalExpr{Op: "||", Left: &LogicalExpr{Op: "||", Left: a, Right: b}, Right: a}
	assert.Equal(t, "(|| (|| a b) a)", logical.String())

	hash := &HashLit{Pairs: []*HashPair{{Key: &SymbolLit{Name: "k"}, Value: b}}}
	assert.Equal(t, "{:k => b}", hash.String())

	arr := &ArrayLit{Elements: []Expr{a, b}}
	assert.Equal(t, "[a, b]", arr.String())

	rng := &RangeExpr{Low: a, High: b, Exclusive: true}
	assert.Equal(t, "(... a b)", rng.String())

	re := &RegexpLit{Parts: []Expr{&StringLit{Value: "ab+"}}, Flags: "i"}
	assert.Equal(t, `(regexp "ab+" /i)`, re.String())

	paren := &ParenExpr{Body: &Block{Statements: []Expr{a, b}}}
	assert.Equal(t, "(paren (begin a b))", paren.String())

	tern := &TernaryExpr{Cond: a, Then: b, Else: &NilLit{}}
	assert.Equal(t, "(? a b nil)", tern.String())
}

func TestNodeTypeString(t *testing.T) {
	assert.Equal(t, "LOGICAL_EXPR", LOGICAL_EXPR.String())
	assert.Equal(t, "ILLEGAL", NodeType(999).String())
	assert.Equal(t, "instance", InstanceVar.String())
}
