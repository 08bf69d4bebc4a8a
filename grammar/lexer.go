package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

const keywordPattern = `(?:__ENCODING__|__LINE__|__FILE__|BEGIN|END|alias|and|begin|break|case|class|def|do|else|elsif|end|ensure|false|for|if|in|module|next|nil|not|or|redo|rescue|retry|return|self|super|then|true|undef|unless|until|when|while|yield)\b`

// RubyLexer is a highlighting lexer. It never fails: anything it does not
// recognise becomes an Unknown token. Strings are lexed with a state stack
// so that interpolated code inside "#{...}" is tokenised as code.
var RubyLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "EmbeddedDoc", Pattern: `=begin\b[\s\S]*?\n=end\b[^\n]*`, Action: nil},
		{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},

		// Literals
		{Name: "StringStart", Pattern: `"`, Action: lexer.Push("String")},
		{Name: "CommandStart", Pattern: "`", Action: lexer.Push("Command")},
		{Name: "SingleString", Pattern: `'(?:\\.|[^'\\])*'`, Action: nil},
		{Name: "Percent", Pattern: `%[qQwWiIsrx]?(?:\([^)]*\)|\[[^\]]*\]|\{[^}]*\}|<[^>]*>|\|[^|]*\|)`, Action: nil},
		{Name: "Heredoc", Pattern: "<<[-~]?(?:[A-Z_][A-Z0-9_]*|'[^'\\n]+'|\"[^\"\\n]+\")", Action: nil},
		{Name: "Symbol", Pattern: `:(?:[A-Za-z_]\w*[?!=]?|@@?[A-Za-z_]\w*|\$\w+|\[\]=?|<=>|===?|=~|!=|\*\*|[+\-]@?|<<|>>|<=|>=|[*/%<>!~&|^])`, Action: nil},
		{Name: "Float", Pattern: `\d[\d_]*\.\d[\d_]*(?:[eE][+-]?\d+)?|\d[\d_]*[eE][+-]?\d+`, Action: nil},
		{Name: "Integer", Pattern: `0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[dD][\d_]+|0[oO_]?[0-7_]+|\d[\d_]*`, Action: nil},
		{Name: "Char", Pattern: `\?(?:\\[^\s]|[^\s\w])`, Action: nil},

		// Variables and names
		{Name: "ClassVar", Pattern: `@@[A-Za-z_]\w*`, Action: nil},
		{Name: "InstanceVar", Pattern: `@[A-Za-z_]\w*`, Action: nil},
		{Name: "GlobalVar", Pattern: "\\$(?:[A-Za-z_]\\w*|-\\w|\\d+|[~*$?!@/\\\\;,.=:<>\"&`'+])", Action: nil},
		{Name: "Keyword", Pattern: `defined\?|` + keywordPattern, Action: nil},
		{Name: "MethodName", Pattern: `[a-z_]\w*[?!]`, Action: nil},
		{Name: "Constant", Pattern: `[A-Z]\w*`, Action: nil},
		{Name: "Ident", Pattern: `[a-z_]\w*`, Action: nil},

		// Operators and punctuation
		{Name: "Operator", Pattern: `\*\*=?|<=>|===?|=~|!~|!=|&&=?|\|\|=?|<<=?|>>=?|\.\.\.?|=>|->|[-+*/%&|^<>]=?|[=!~?:]`, Action: nil},
		{Name: "Punct", Pattern: `[()\[\]{},;.]`, Action: nil},

		{Name: "Newline", Pattern: `\r?\n`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t]+|\\\r?\n`, Action: nil},
		{Name: "Unknown", Pattern: `.`, Action: nil},
	},
	"String": {
		{Name: "Escaped", Pattern: `\\[\s\S]?`, Action: nil},
		{Name: "StringEnd", Pattern: `"`, Action: lexer.Pop()},
		{Name: "InterpStart", Pattern: `#\{`, Action: lexer.Push("Interp")},
		{Name: "Chars", Pattern: `[^"\\#]+|#`, Action: nil},
	},
	"Command": {
		{Name: "Escaped", Pattern: `\\[\s\S]?`, Action: nil},
		{Name: "CommandEnd", Pattern: "`", Action: lexer.Pop()},
		{Name: "InterpStart", Pattern: `#\{`, Action: lexer.Push("Interp")},
		{Name: "CommandChars", Pattern: "[^`\\\\#]+|#", Action: nil},
	},
	"Interp": {
		{Name: "InterpEnd", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "BraceOpen", Pattern: `\{`, Action: lexer.Push("Interp")},
		lexer.Include("Root"),
	},
})
