package ast

type NodeType int

const (
	// Special
	ILLEGAL NodeType = iota
	PLACEHOLDER

	// Structure
	PROGRAM
	BLOCK
	PAREN_EXPR

	// Identifiers and pseudo-variables
	IDENT
	SELF_EXPR
	PSEUDO_VAR

	// Literals
	INTEGER_LIT
	FLOAT_LIT
	STRING_LIT
	INTERPOLATED_STRING
	SYMBOL_LIT
	INTERPOLATED_SYMBOL
	COMMAND_LIT
	INTERPOLATED_COMMAND
	REGEXP_LIT
	ARRAY_LIT
	HASH_LIT
	HASH_PAIR
	BOOL_LIT
	NIL_LIT

	// Operators
	BINARY_EXPR
	UNARY_EXPR
	LOGICAL_EXPR
	NOT_EXPR
	ASSIGN_EXPR
	TERNARY_EXPR
	RANGE_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:              "ILLEGAL",
	PLACEHOLDER:          "PLACEHOLDER",
	PROGRAM:              "PROGRAM",
	BLOCK:                "BLOCK",
	PAREN_EXPR:           "PAREN_EXPR",
	IDENT:                "IDENT",
	SELF_EXPR:            "SELF_EXPR",
	PSEUDO_VAR:           "PSEUDO_VAR",
	INTEGER_LIT:          "INTEGER_LIT",
	FLOAT_LIT:            "FLOAT_LIT",
	STRING_LIT:           "STRING_LIT",
	INTERPOLATED_STRING:  "INTERPOLATED_STRING",
	SYMBOL_LIT:           "SYMBOL_LIT",
	INTERPOLATED_SYMBOL:  "INTERPOLATED_SYMBOL",
	COMMAND_LIT:          "COMMAND_LIT",
	INTERPOLATED_COMMAND: "INTERPOLATED_COMMAND",
	REGEXP_LIT:           "REGEXP_LIT",
	ARRAY_LIT:            "ARRAY_LIT",
	HASH_LIT:             "HASH_LIT",
	HASH_PAIR:            "HASH_PAIR",
	BOOL_LIT:             "BOOL_LIT",
	NIL_LIT:              "NIL_LIT",
	BINARY_EXPR:          "BINARY_EXPR",
	UNARY_EXPR:           "UNARY_EXPR",
	LOGICAL_EXPR:         "LOGICAL_EXPR",
	NOT_EXPR:             "NOT_EXPR",
	ASSIGN_EXPR:          "ASSIGN_EXPR",
	TERNARY_EXPR:         "TERNARY_EXPR",
	RANGE_EXPR:           "RANGE_EXPR",
}

func (t NodeType) String() string {
	if int(t) >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "ILLEGAL"
}

// IdentKind tags an identifier with the variable form it was lexed as.
type IdentKind int

const (
	LocalVar IdentKind = iota
	GlobalVar
	ClassVar
	InstanceVar
	Constant
	MethodName       // name! or name?
	AssignMethodName // name=
)

func (k IdentKind) String() string {
	switch k {
	case LocalVar:
		return "local"
	case GlobalVar:
		return "global"
	case ClassVar:
		return "class"
	case InstanceVar:
		return "instance"
	case Constant:
		return "constant"
	case MethodName:
		return "method"
	case AssignMethodName:
		return "assignment-method"
	default:
		return "unknown"
	}
}
