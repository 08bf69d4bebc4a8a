package ast

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(n int64, offset int) *IntegerLit {
	return &IntegerLit{
		Value:  big.NewInt(n),
		Pos:    Position{Offset: offset, Line: 1, Column: offset + 1},
		EndPos: Position{Offset: offset + 1, Line: 1, Column: offset + 2},
	}
}

func TestBackpatchBuildsLeftAssociativeChain(t *testing.T) {
	// 1 || 2 || 3 as produced by the right-recursive continuation
	inner := &LogicalExpr{Op: "||", Left: &Placeholder{}, Right: lit(2, 5)}
	outer := &LogicalExpr{Op: "||", Left: inner, Right: lit(3, 10)}

	patched := Backpatch(outer, lit(1, 0))

	assert.Equal(t, "(|| (|| 1 2) 3)", patched.String())
	assert.False(t, ContainsPlaceholder(patched))
	assert.Equal(t, 0, patched.NodePos().Offset)
	assert.Equal(t, 0, inner.NodePos().Offset)
}

func TestBackpatchBarePlaceholder(t *testing.T) {
	first := lit(7, 0)
	assert.Same(t, first, Backpatch(&Placeholder{}, first))
}

func TestBackpatchWithoutPlaceholder(t *testing.T) {
	chain := &LogicalExpr{Op: "&&", Left: lit(1, 0), Right: lit(2, 5)}
	assert.Same(t, chain, Backpatch(chain, lit(9, 0)))
	assert.Equal(t, "(&& 1 2)", chain.String())
}

func TestInspectAndCollect(t *testing.T) {
	tree := &BinaryExpr{
		Op:    "+",
		Left:  lit(1, 0),
		Right: &UnaryExpr{Op: "-@", Operand: lit(2, 5)},
	}
	nodes := CollectAllNodes(tree)
	require.Len(t, nodes, 4)
	assert.Equal(t, BINARY_EXPR, nodes[0].NodeType())
	assert.Equal(t, UNARY_EXPR, nodes[2].NodeType())

	count := 0
	Inspect(tree, func(n Node) bool {
		count++
		return n.NodeType() != UNARY_EXPR
	})
	assert.Equal(t, 3, count)
}

func TestFindNodeAt(t *testing.T) {
	left := lit(1, 0)
	right := lit(2, 4)
	tree := &BinaryExpr{
		Op: "+", Left: left, Right: right,
		Pos:    Position{Offset: 0},
		EndPos: Position{Offset: 5},
	}

	assert.Same(t, left, FindNodeAt(tree, 0))
	assert.Same(t, right, FindNodeAt(tree, 4))
	assert.Equal(t, BINARY_EXPR, FindNodeAt(tree, 2).NodeType())
	assert.Nil(t, FindNodeAt(tree, 50))
}

func TestContainsPlaceholder(t *testing.T) {
	tree := &ArrayLit{Elements: []Expr{lit(1, 0), &Placeholder{}}}
	assert.True(t, ContainsPlaceholder(tree))
	assert.False(t, ContainsPlaceholder(lit(1, 0)))
}
