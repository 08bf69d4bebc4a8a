package ast

// Children returns the direct sub-nodes of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	addExprs := func(exprs []Expr) {
		for _, e := range exprs {
			if e != nil {
				out = append(out, e)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		if n.Body != nil {
			addExprs(n.Body.Statements)
		}
	case *Block:
		addExprs(n.Statements)
	case *ParenExpr:
		if n.Body != nil {
			addExprs(n.Body.Statements)
		}
	case *InterpolatedString:
		addExprs(n.Parts)
	case *InterpolatedSymbol:
		addExprs(n.Parts)
	case *InterpolatedCommand:
		addExprs(n.Parts)
	case *RegexpLit:
		addExprs(n.Parts)
	case *ArrayLit:
		addExprs(n.Elements)
	case *HashLit:
		for _, p := range n.Pairs {
			add(p)
		}
	case *HashPair:
		add(n.Key)
		add(n.Value)
	case *BinaryExpr:
		add(n.Left)
		add(n.Right)
	case *LogicalExpr:
		add(n.Left)
		add(n.Right)
	case *UnaryExpr:
		add(n.Operand)
	case *NotExpr:
		add(n.Operand)
	case *AssignExpr:
		add(n.Target)
		add(n.Value)
	case *TernaryExpr:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *RangeExpr:
		add(n.Low)
		add(n.High)
	}
	return out
}

// Inspect traverses the tree depth-first. If f returns false the children of
// that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}

// CollectAllNodes performs a deep traversal and returns every node, parents
// before children.
func CollectAllNodes(root Node) []Node {
	var nodes []Node
	Inspect(root, func(n Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// FindNodeAt returns the innermost node whose source range contains the byte
// offset, or nil.
func FindNodeAt(root Node, offset int) Node {
	var found Node
	Inspect(root, func(n Node) bool {
		if !contains(n, offset) {
			return false
		}
		found = n
		return true
	})
	return found
}

func contains(n Node, offset int) bool {
	start, end := n.NodePos().Offset, n.NodeEndPos().Offset
	if end == start {
		return offset == start
	}
	return offset >= start && offset < end
}

// ContainsPlaceholder reports whether a Placeholder is left anywhere in the tree.
func ContainsPlaceholder(root Node) bool {
	found := false
	Inspect(root, func(n Node) bool {
		if _, ok := n.(*Placeholder); ok {
			found = true
		}
		return !found
	})
	return found
}

// Backpatch substitutes first for the Placeholder at the bottom of the left
// spine of a logical chain and returns the patched tree. Every node on the
// spine is re-anchored to start where first starts. A chain without a
// placeholder is returned unchanged.
func Backpatch(chain Expr, first Expr) Expr {
	if _, ok := chain.(*Placeholder); ok {
		return first
	}

	var spine []*LogicalExpr
	cur := chain
	for {
		l, ok := cur.(*LogicalExpr)
		if !ok {
			return chain
		}
		spine = append(spine, l)
		if _, ok := l.Left.(*Placeholder); ok {
			l.Left = first
			break
		}
		cur = l.Left
	}

	for _, l := range spine {
		l.Pos = first.NodePos()
	}
	return chain
}
