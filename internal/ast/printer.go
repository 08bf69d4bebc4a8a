package ast

import (
	"math"
	"strconv"
	"strings"
)

// String methods render nodes as compact S-expressions. Two trees print the
// same text exactly when they have the same shape and values, which makes the
// output suitable for assertions and for the CLI's AST dump.

func (p *Program) String() string {
	if p.Body == nil {
		return "(program)"
	}
	return "(program" + joinPrefixed(p.Body.Statements) + ")"
}

func (b *Block) String() string {
	return "(begin" + joinPrefixed(b.Statements) + ")"
}

func (p *ParenExpr) String() string {
	if p.Body == nil || len(p.Body.Statements) == 0 {
		return "(paren)"
	}
	if len(p.Body.Statements) == 1 {
		return "(paren " + p.Body.Statements[0].String() + ")"
	}
	return "(paren " + p.Body.String() + ")"
}

func (i *Ident) String() string { return i.Name }

func (*SelfExpr) String() string { return "self" }

func (p *PseudoVar) String() string { return p.Name }

func (i *IntegerLit) String() string {
	if i.Value == nil {
		return i.Raw
	}
	return i.Value.String()
}

func (f *FloatLit) String() string { return FormatFloat(f.Value) }

// FormatFloat prints a float the way Ruby's Float#inspect does for the common
// cases: a decimal point is always present and the sign of zero is kept.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func (s *StringLit) String() string { return strconv.Quote(s.Value) }

func (s *InterpolatedString) String() string {
	return "(dstr" + joinPrefixed(s.Parts) + ")"
}

func (s *SymbolLit) String() string { return ":" + s.Name }

func (s *InterpolatedSymbol) String() string {
	return "(dsym" + joinPrefixed(s.Parts) + ")"
}

func (c *CommandLit) String() string { return "(xstr " + strconv.Quote(c.Value) + ")" }

func (c *InterpolatedCommand) String() string {
	return "(dxstr" + joinPrefixed(c.Parts) + ")"
}

func (r *RegexpLit) String() string {
	out := "(regexp" + joinPrefixed(r.Parts)
	if r.Flags != "" {
		out += " /" + r.Flags
	}
	return out + ")"
}

func (a *ArrayLit) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (h *HashLit) String() string {
	parts := make([]string, len(h.Pairs))
	for i, p := range h.Pairs {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (h *HashPair) String() string {
	return h.Key.String() + " => " + h.Value.String()
}

func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (*NilLit) String() string { return "nil" }

func (b *BinaryExpr) String() string {
	return "(" + b.Op + " " + b.Left.String() + " " + b.Right.String() + ")"
}

func (u *UnaryExpr) String() string {
	return "(" + u.Op + " " + u.Operand.String() + ")"
}

func (l *LogicalExpr) String() string {
	return "(" + l.Op + " " + l.Left.String() + " " + l.Right.String() + ")"
}

func (n *NotExpr) String() string { return "(not " + n.Operand.String() + ")" }

func (a *AssignExpr) String() string {
	return "(" + a.Op + " " + a.Target.String() + " " + a.Value.String() + ")"
}

func (t *TernaryExpr) String() string {
	return "(? " + t.Cond.String() + " " + t.Then.String() + " " + t.Else.String() + ")"
}

func (r *RangeExpr) String() string {
	op := ".."
	if r.Exclusive {
		op = "..."
	}
	return "(" + op + " " + r.Low.String() + " " + r.High.String() + ")"
}

func (*Placeholder) String() string { return "<placeholder>" }

func joinPrefixed(exprs []Expr) string {
	var sb strings.Builder
	for _, e := range exprs {
		sb.WriteByte(' ')
		if e == nil {
			sb.WriteString("<nil>")
			continue
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
