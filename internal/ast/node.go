package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position    { return p.Pos }
func (p *Program) NodeEndPos() Position { return p.EndPos }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (b *Block) NodePos() Position    { return b.Pos }
func (b *Block) NodeEndPos() Position { return b.EndPos }
func (*Block) NodeType() NodeType     { return BLOCK }

func (p *ParenExpr) NodePos() Position    { return p.Pos }
func (p *ParenExpr) NodeEndPos() Position { return p.EndPos }
func (*ParenExpr) NodeType() NodeType     { return PAREN_EXPR }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (s *SelfExpr) NodePos() Position    { return s.Pos }
func (s *SelfExpr) NodeEndPos() Position { return s.EndPos }
func (*SelfExpr) NodeType() NodeType     { return SELF_EXPR }

func (p *PseudoVar) NodePos() Position    { return p.Pos }
func (p *PseudoVar) NodeEndPos() Position { return p.EndPos }
func (*PseudoVar) NodeType() NodeType     { return PSEUDO_VAR }

func (i *IntegerLit) NodePos() Position    { return i.Pos }
func (i *IntegerLit) NodeEndPos() Position { return i.EndPos }
func (*IntegerLit) NodeType() NodeType     { return INTEGER_LIT }

func (f *FloatLit) NodePos() Position    { return f.Pos }
func (f *FloatLit) NodeEndPos() Position { return f.EndPos }
func (*FloatLit) NodeType() NodeType     { return FLOAT_LIT }

func (s *StringLit) NodePos() Position    { return s.Pos }
func (s *StringLit) NodeEndPos() Position { return s.EndPos }
func (*StringLit) NodeType() NodeType     { return STRING_LIT }

func (s *InterpolatedString) NodePos() Position    { return s.Pos }
func (s *InterpolatedString) NodeEndPos() Position { return s.EndPos }
func (*InterpolatedString) NodeType() NodeType     { return INTERPOLATED_STRING }

func (s *SymbolLit) NodePos() Position    { return s.Pos }
func (s *SymbolLit) NodeEndPos() Position { return s.EndPos }
func (*SymbolLit) NodeType() NodeType     { return SYMBOL_LIT }

func (s *InterpolatedSymbol) NodePos() Position    { return s.Pos }
func (s *InterpolatedSymbol) NodeEndPos() Position { return s.EndPos }
func (*InterpolatedSymbol) NodeType() NodeType     { return INTERPOLATED_SYMBOL }

func (c *CommandLit) NodePos() Position    { return c.Pos }
func (c *CommandLit) NodeEndPos() Position { return c.EndPos }
func (*CommandLit) NodeType() NodeType     { return COMMAND_LIT }

func (c *InterpolatedCommand) NodePos() Position    { return c.Pos }
func (c *InterpolatedCommand) NodeEndPos() Position { return c.EndPos }
func (*InterpolatedCommand) NodeType() NodeType     { return INTERPOLATED_COMMAND }

func (r *RegexpLit) NodePos() Position    { return r.Pos }
func (r *RegexpLit) NodeEndPos() Position { return r.EndPos }
func (*RegexpLit) NodeType() NodeType     { return REGEXP_LIT }

func (a *ArrayLit) NodePos() Position    { return a.Pos }
func (a *ArrayLit) NodeEndPos() Position { return a.EndPos }
func (*ArrayLit) NodeType() NodeType     { return ARRAY_LIT }

func (h *HashLit) NodePos() Position    { return h.Pos }
func (h *HashLit) NodeEndPos() Position { return h.EndPos }
func (*HashLit) NodeType() NodeType     { return HASH_LIT }

func (h *HashPair) NodePos() Position    { return h.Pos }
func (h *HashPair) NodeEndPos() Position { return h.EndPos }
func (*HashPair) NodeType() NodeType     { return HASH_PAIR }

func (b *BoolLit) NodePos() Position    { return b.Pos }
func (b *BoolLit) NodeEndPos() Position { return b.EndPos }
func (*BoolLit) NodeType() NodeType     { return BOOL_LIT }

func (n *NilLit) NodePos() Position    { return n.Pos }
func (n *NilLit) NodeEndPos() Position { return n.EndPos }
func (*NilLit) NodeType() NodeType     { return NIL_LIT }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (l *LogicalExpr) NodePos() Position    { return l.Pos }
func (l *LogicalExpr) NodeEndPos() Position { return l.EndPos }
func (*LogicalExpr) NodeType() NodeType     { return LOGICAL_EXPR }

func (n *NotExpr) NodePos() Position    { return n.Pos }
func (n *NotExpr) NodeEndPos() Position { return n.EndPos }
func (*NotExpr) NodeType() NodeType     { return NOT_EXPR }

func (a *AssignExpr) NodePos() Position    { return a.Pos }
func (a *AssignExpr) NodeEndPos() Position { return a.EndPos }
func (*AssignExpr) NodeType() NodeType     { return ASSIGN_EXPR }

func (t *TernaryExpr) NodePos() Position    { return t.Pos }
func (t *TernaryExpr) NodeEndPos() Position { return t.EndPos }
func (*TernaryExpr) NodeType() NodeType     { return TERNARY_EXPR }

func (r *RangeExpr) NodePos() Position    { return r.Pos }
func (r *RangeExpr) NodeEndPos() Position { return r.EndPos }
func (*RangeExpr) NodeType() NodeType     { return RANGE_EXPR }

func (p *Placeholder) NodePos() Position    { return p.Pos }
func (p *Placeholder) NodeEndPos() Position { return p.EndPos }
func (*Placeholder) NodeType() NodeType     { return PLACEHOLDER }
