package parser

import (
	"rubyfront/internal/ast"
)

// opSpec is a binary operator that must not be immediately followed by any
// rune in notBefore.
type opSpec struct {
	op        string
	notBefore string
}

// Operator tables, longest spelling first within each tier.
var (
	equalityOps = []opSpec{
		{"<=>", ""}, {"===", ""}, {"==", ""}, {"!=", ""}, {"=~", ""}, {"!~", ""},
	}
	relationalOps = []opSpec{
		{"<=", ">"}, {">=", ""}, {"<", "<="}, {">", ">="},
	}
	bitwiseOrOps = []opSpec{
		{"|", "|="}, {"^", "="},
	}
	bitwiseAndOps = []opSpec{
		{"&", "&=."},
	}
	shiftOps = []opSpec{
		{"<<", "="}, {">>", "="},
	}
	additiveOps = []opSpec{
		{"+", "="}, {"-", "=>"},
	}
	multiplicativeOps = []opSpec{
		{"*", "*="}, {"/", "="}, {"%", "="},
	}
	assignmentOps = []opSpec{
		{"**=", ""}, {"<<=", ""}, {">>=", ""}, {"&&=", ""}, {"||=", ""},
		{"+=", ""}, {"-=", ""}, {"*=", ""}, {"/=", ""}, {"%=", ""},
		{"|=", ""}, {"&=", ""}, {"^=", ""}, {"=", "=~>"},
	}
)

func matchOperator(in Input, ops []opSpec) (Input, string, bool) {
	for _, o := range ops {
		if out, op, err := operator(o.op, o.notBefore)(in); err == nil {
			return out, op, true
		}
	}
	return in, "", false
}

// Statement parses expressions joined by the low-precedence and/or keywords.
func Statement(in Input) (Input, ast.Expr, error) {
	return logicalChain(in, notExpression, word("and"), word("or"))
}

// logicalChain parses a left-associative chain without left recursion. The
// first operand is parsed on its own; the rest of the chain is built
// right-recursively with a Placeholder standing in for the leftmost operand,
// which is then backpatched with the first operand.
func logicalChain(in Input, operand Parser[ast.Expr], ops ...Parser[string]) (Input, ast.Expr, error) {
	afterFirst, first, err := operand(in)
	if err != nil {
		return in, nil, err
	}
	out, chain, err := logicalContinuation(afterFirst, operand, ops)
	if err != nil {
		return in, nil, err
	}
	if chain == nil {
		return afterFirst, first, nil
	}
	return out, ast.Backpatch(chain, first), nil
}

// logicalContinuation parses (op operand continuation?). It returns a nil
// expression when no operator follows.
func logicalContinuation(in Input, operand Parser[ast.Expr], ops []Parser[string]) (Input, ast.Expr, error) {
	afterOp, op, err := alt(ops...)(spaces(in))
	if err != nil {
		return in, nil, nil
	}
	afterRight, right, err := operand(layout(afterOp))
	if err != nil {
		if isCommitted(err) {
			return in, nil, err
		}
		return in, nil, nil
	}

	hole := &ast.Placeholder{Pos: pos(in), EndPos: pos(in)}
	node := &ast.LogicalExpr{Pos: pos(in), EndPos: right.NodeEndPos(), Op: op, Left: hole, Right: right}

	out, rest, err := nested(afterRight, func(next Input) (Input, ast.Expr, error) {
		return logicalContinuation(next, operand, ops)
	})
	if err != nil {
		return in, nil, err
	}
	if rest == nil {
		return afterRight, node, nil
	}
	return out, ast.Backpatch(rest, node), nil
}

// leftFold parses operand (op operand)* iteratively, folding to the left.
func leftFold(in Input, operand Parser[ast.Expr], ops []opSpec) (Input, ast.Expr, error) {
	out, left, err := operand(in)
	if err != nil {
		return in, nil, err
	}
	for {
		afterOp, op, ok := matchOperator(spaces(out), ops)
		if !ok {
			return out, left, nil
		}
		afterRight, right, err := operand(layout(afterOp))
		if err != nil {
			if isCommitted(err) {
				return in, nil, err
			}
			return out, left, nil
		}
		left = &ast.BinaryExpr{Pos: left.NodePos(), EndPos: right.NodeEndPos(), Op: op, Left: left, Right: right}
		out = afterRight
	}
}

func notExpression(in Input) (Input, ast.Expr, error) {
	afterKw, _, err := word("not")(in)
	if err != nil {
		return assignment(in)
	}
	out, operand, err := nested(spaces(afterKw), notExpression)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.NotExpr{Pos: pos(in), EndPos: operand.NodeEndPos(), Operand: operand}, nil
}

func assignable(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	if !ok {
		return false
	}
	switch id.Kind {
	case ast.LocalVar, ast.GlobalVar, ast.ClassVar, ast.InstanceVar, ast.Constant:
		return true
	}
	return false
}

// assignment handles = and the operator-assignment forms. It is right
// associative: a = b = c assigns c to b first.
func assignment(in Input) (Input, ast.Expr, error) {
	afterTarget, target, err := ternary(in)
	if err != nil {
		return in, nil, err
	}
	if !assignable(target) {
		return afterTarget, target, nil
	}
	afterOp, op, ok := matchOperator(spaces(afterTarget), assignmentOps)
	if !ok {
		return afterTarget, target, nil
	}
	out, value, err := nested(layout(afterOp), assignment)
	if err != nil {
		if isCommitted(err) {
			return in, nil, err
		}
		return afterTarget, target, nil
	}
	return out, &ast.AssignExpr{Pos: target.NodePos(), EndPos: value.NodeEndPos(), Op: op, Target: target, Value: value}, nil
}

func ternary(in Input) (Input, ast.Expr, error) {
	afterCond, cond, err := rangeExpression(in)
	if err != nil {
		return in, nil, err
	}
	q := spaces(afterCond)
	if !q.HasPrefix("?") {
		return afterCond, cond, nil
	}

	out, node, err := nested(layout(q.Advance(1)), func(branches Input) (Input, ast.Expr, error) {
		afterThen, then, err := assignment(branches)
		if err != nil {
			return branches, nil, err
		}
		colon := layout(afterThen)
		if !colon.HasPrefix(":") || colon.HasPrefix("::") {
			return branches, nil, note(colon, expected(colon, "':' in conditional expression"))
		}
		afterElse, els, err := assignment(layout(colon.Advance(1)))
		if err != nil {
			return branches, nil, err
		}
		return afterElse, &ast.TernaryExpr{Pos: cond.NodePos(), EndPos: els.NodeEndPos(), Cond: cond, Then: then, Else: els}, nil
	})
	if err != nil {
		if isCommitted(err) {
			return in, nil, err
		}
		return afterCond, cond, nil
	}
	return out, node, nil
}

func rangeExpression(in Input) (Input, ast.Expr, error) {
	afterLow, low, err := orExpression(in)
	if err != nil {
		return in, nil, err
	}
	afterOp, op, ok := matchOperator(spaces(afterLow), []opSpec{{"...", ""}, {"..", "."}})
	if !ok {
		return afterLow, low, nil
	}
	out, high, err := orExpression(layout(afterOp))
	if err != nil {
		if isCommitted(err) {
			return in, nil, err
		}
		return afterLow, low, nil
	}
	return out, &ast.RangeExpr{Pos: low.NodePos(), EndPos: high.NodeEndPos(), Low: low, High: high, Exclusive: op == "..."}, nil
}

func orExpression(in Input) (Input, ast.Expr, error) {
	return logicalChain(in, andExpression, operator("||", "="))
}

func andExpression(in Input) (Input, ast.Expr, error) {
	return logicalChain(in, equality, operator("&&", "="))
}

func equality(in Input) (Input, ast.Expr, error) {
	return leftFold(in, relational, equalityOps)
}

func relational(in Input) (Input, ast.Expr, error) {
	return leftFold(in, bitwiseOr, relationalOps)
}

func bitwiseOr(in Input) (Input, ast.Expr, error) {
	return leftFold(in, bitwiseAnd, bitwiseOrOps)
}

func bitwiseAnd(in Input) (Input, ast.Expr, error) {
	return leftFold(in, shift, bitwiseAndOps)
}

func shift(in Input) (Input, ast.Expr, error) {
	return leftFold(in, additive, shiftOps)
}

func additive(in Input) (Input, ast.Expr, error) {
	return leftFold(in, multiplicative, additiveOps)
}

func multiplicative(in Input) (Input, ast.Expr, error) {
	return leftFold(in, unaryMinus, multiplicativeOps)
}

// unaryMinus binds looser than **: -2 ** 2 is -(2 ** 2), while a bare -2 is
// a negative literal.
func unaryMinus(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("-") || in.HasPrefix("->") {
		return power(in)
	}
	cur := in.Advance(1)

	if r, _ := cur.Peek(); isDecDigit(r) {
		out, e, err := nested(cur, power)
		if err != nil {
			return in, nil, err
		}
		switch n := e.(type) {
		case *ast.IntegerLit, *ast.FloatLit:
			return out, applySign(n, "-", pos(in)), nil
		}
		return out, &ast.UnaryExpr{Pos: pos(in), EndPos: e.NodeEndPos(), Op: "-@", Operand: e}, nil
	}

	out, operand, err := nested(spaces(cur), unaryMinus)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.UnaryExpr{Pos: pos(in), EndPos: operand.NodeEndPos(), Op: "-@", Operand: operand}, nil
}

// power is right associative by plain right recursion.
func power(in Input) (Input, ast.Expr, error) {
	afterBase, base, err := unary(in)
	if err != nil {
		return in, nil, err
	}
	afterOp, _, ok := matchOperator(spaces(afterBase), []opSpec{{"**", "="}})
	if !ok {
		return afterBase, base, nil
	}
	out, exponent, err := nested(layout(afterOp), unaryMinus)
	if err != nil {
		if isCommitted(err) {
			return in, nil, err
		}
		return afterBase, base, nil
	}
	return out, &ast.BinaryExpr{Pos: base.NodePos(), EndPos: exponent.NodeEndPos(), Op: "**", Left: base, Right: exponent}, nil
}

func unary(in Input) (Input, ast.Expr, error) {
	var op string
	switch {
	case in.HasPrefix("!") && !in.HasPrefix("!=") && !in.HasPrefix("!~"):
		op = "!"
	case in.HasPrefix("~"):
		op = "~"
	case in.HasPrefix("+"), in.HasPrefix("-") && !in.HasPrefix("->"):
		if r, _ := in.Advance(1).Peek(); isDecDigit(r) {
			return NumericLiteral(in)
		}
		op = in.Rest()[:1] + "@"
	default:
		return primary(in)
	}

	out, operand, err := nested(spaces(in.Advance(1)), unary)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.UnaryExpr{Pos: pos(in), EndPos: operand.NodeEndPos(), Op: op, Operand: operand}, nil
}
