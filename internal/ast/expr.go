package ast

import "math/big"

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Program is the root of a parsed source file.
type Program struct {
	Pos    Position
	EndPos Position
	Body   *Block
}

// Block is a compound statement: statements separated by newlines or ';'.
// Its value is the value of the last statement.
// Example: "a = 1; a + 2"
type Block struct {
	Pos        Position
	EndPos     Position
	Statements []Expr
}

// ParenExpr is a parenthesized compound statement.
// Example: "(a; b)"
type ParenExpr struct {
	Pos    Position
	EndPos Position
	Body   *Block
}

// Ident is a variable or method reference.
// Example: "x", "$stdout", "@@count", "@name", "Foo", "empty?", "value="
type Ident struct {
	Pos    Position
	EndPos Position
	Kind   IdentKind
	Name   string
}

// SelfExpr is the "self" pseudo-variable.
type SelfExpr struct {
	Pos    Position
	EndPos Position
}

// PseudoVar is one of __FILE__, __LINE__ or __ENCODING__.
type PseudoVar struct {
	Pos    Position
	EndPos Position
	Name   string
	Value  string
}

// IntegerLit holds any integer literal; values never overflow.
// Example: "42", "-0x0000_000F", "0b1010"
type IntegerLit struct {
	Pos    Position
	EndPos Position
	Value  *big.Int
	Raw    string
}

// FloatLit example: "1.5", "-0.0", "2e10"
type FloatLit struct {
	Pos    Position
	EndPos Position
	Value  float64
	Raw    string
}

// StringLit is a string without embedded expressions, already unescaped.
type StringLit struct {
	Pos    Position
	EndPos Position
	Value  string
}

// InterpolatedString alternates StringLit fragments and embedded expressions.
// Example: "\"a#{b}c\""
type InterpolatedString struct {
	Pos    Position
	EndPos Position
	Parts  []Expr
}

// SymbolLit example: ":name", ":+", ":\"quoted\""
type SymbolLit struct {
	Pos    Position
	EndPos Position
	Name   string
}

// InterpolatedSymbol example: ":\"a#{b}\""
type InterpolatedSymbol struct {
	Pos    Position
	EndPos Position
	Parts  []Expr
}

// CommandLit is a backquoted or %x command without embedded expressions.
type CommandLit struct {
	Pos    Position
	EndPos Position
	Value  string
}

// InterpolatedCommand example: "`ls #{dir}`"
type InterpolatedCommand struct {
	Pos    Position
	EndPos Position
	Parts  []Expr
}

// RegexpLit keeps the pattern source; Parts holds StringLit fragments and any
// embedded expressions.
// Example: "/ab+c/i", "%r{a#{b}}"
type RegexpLit struct {
	Pos    Position
	EndPos Position
	Parts  []Expr
	Flags  string
}

// ArrayLit example: "[1, 2]", "%w(a b)"
type ArrayLit struct {
	Pos      Position
	EndPos   Position
	Elements []Expr
}

// HashLit example: "{a => 1, b: 2}"
type HashLit struct {
	Pos    Position
	EndPos Position
	Pairs  []*HashPair
}

type HashPair struct {
	Pos    Position
	EndPos Position
	Key    Expr
	Value  Expr
}

type BoolLit struct {
	Pos    Position
	EndPos Position
	Value  bool
}

type NilLit struct {
	Pos    Position
	EndPos Position
}

// BinaryExpr covers arithmetic, bitwise, shift, relational and equality
// operators.
// Example: "a + b", "x <=> y"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Left   Expr
	Right  Expr
}

// UnaryExpr uses Ruby's method names for the sign operators: "-@" and "+@".
// Example: "-x", "!done", "~mask"
type UnaryExpr struct {
	Pos     Position
	EndPos  Position
	Op      string
	Operand Expr
}

// LogicalExpr is a short-circuit operator: "&&", "||", "and" or "or".
type LogicalExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Left   Expr
	Right  Expr
}

// NotExpr is the low-precedence "not" keyword.
type NotExpr struct {
	Pos     Position
	EndPos  Position
	Operand Expr
}

// AssignExpr covers "=" and the operator-assignment forms ("+=", "||=", ...).
type AssignExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Target Expr
	Value  Expr
}

// TernaryExpr example: "a ? b : c"
type TernaryExpr struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Then   Expr
	Else   Expr
}

// RangeExpr example: "1..10", "a...b"
type RangeExpr struct {
	Pos       Position
	EndPos    Position
	Low       Expr
	High      Expr
	Exclusive bool
}

// Placeholder stands in for the not-yet-parsed leftmost operand while a
// logical chain is built right-recursively. It never survives a successful
// parse.
type Placeholder struct {
	Pos    Position
	EndPos Position
}

type Expr interface {
	Node
	isExpr()
}

func (*Block) isExpr()               {}
func (*ParenExpr) isExpr()           {}
func (*Ident) isExpr()               {}
func (*SelfExpr) isExpr()            {}
func (*PseudoVar) isExpr()           {}
func (*IntegerLit) isExpr()          {}
func (*FloatLit) isExpr()            {}
func (*StringLit) isExpr()           {}
func (*InterpolatedString) isExpr()  {}
func (*SymbolLit) isExpr()           {}
func (*InterpolatedSymbol) isExpr()  {}
func (*CommandLit) isExpr()          {}
func (*InterpolatedCommand) isExpr() {}
func (*RegexpLit) isExpr()           {}
func (*ArrayLit) isExpr()            {}
func (*HashLit) isExpr()             {}
func (*BoolLit) isExpr()             {}
func (*NilLit) isExpr()              {}
func (*BinaryExpr) isExpr()          {}
func (*UnaryExpr) isExpr()           {}
func (*LogicalExpr) isExpr()         {}
func (*NotExpr) isExpr()             {}
func (*AssignExpr) isExpr()          {}
func (*TernaryExpr) isExpr()         {}
func (*RangeExpr) isExpr()           {}
func (*Placeholder) isExpr()         {}
