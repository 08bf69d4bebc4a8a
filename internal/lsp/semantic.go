package lsp

import (
	"strings"

	"rubyfront/grammar"
)

// SemanticTokenTypes is the legend advertised to clients. Indexes into it are
// what the encoded token data carries.
var SemanticTokenTypes = []string{
	"namespace",
	"class",
	"enumMember",
	"function",
	"variable",
	"property",
	"keyword",
	"number",
	"string",
	"regexp",
	"operator",
	"comment",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"static",
	"defaultLibrary",
}

// SemanticToken is one entry before delta encoding. Line and StartChar are
// 0-based; StartChar and Length count UTF-16 code units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

type classification struct {
	tokenType string
	modifiers []string
}

var classifications = map[string]classification{
	"EmbeddedDoc":  {tokenType: "comment"},
	"Comment":      {tokenType: "comment"},
	"StringStart":  {tokenType: "string"},
	"StringEnd":    {tokenType: "string"},
	"CommandStart": {tokenType: "string"},
	"CommandEnd":   {tokenType: "string"},
	"Chars":        {tokenType: "string"},
	"CommandChars": {tokenType: "string"},
	"Escaped":      {tokenType: "string"},
	"SingleString": {tokenType: "string"},
	"Heredoc":      {tokenType: "string"},
	"Percent":      {tokenType: "string"},
	"Char":         {tokenType: "string"},
	"InterpStart":  {tokenType: "operator"},
	"InterpEnd":    {tokenType: "operator"},
	"Symbol":       {tokenType: "enumMember"},
	"Float":        {tokenType: "number"},
	"Integer":      {tokenType: "number"},
	"ClassVar":     {tokenType: "property", modifiers: []string{"static"}},
	"InstanceVar":  {tokenType: "property"},
	"GlobalVar":    {tokenType: "variable", modifiers: []string{"static"}},
	"Keyword":      {tokenType: "keyword"},
	"MethodName":   {tokenType: "function"},
	"Constant":     {tokenType: "class", modifiers: []string{"readonly"}},
	"Ident":        {tokenType: "variable"},
	"Operator":     {tokenType: "operator"},
}

var pseudoVariables = map[string]bool{
	"nil": true, "true": true, "false": true, "self": true,
	"__FILE__": true, "__LINE__": true, "__ENCODING__": true,
}

// collectSemanticTokens classifies the highlighting tokens of text. Tokens
// spanning several lines are split per line.
func collectSemanticTokens(path, text string) ([]SemanticToken, error) {
	lexed, err := grammar.Tokens(path, text)
	if err != nil {
		return nil, err
	}

	var tokens []SemanticToken
	for _, tok := range lexed {
		c, ok := classifications[tok.Kind]
		if !ok {
			continue
		}
		switch {
		case tok.Kind == "Percent" && strings.HasPrefix(tok.Value, "%r"):
			c.tokenType = "regexp"
		case tok.Kind == "Keyword" && pseudoVariables[tok.Value]:
			c.modifiers = []string{"defaultLibrary"}
		}
		tokenType := indexOf(c.tokenType, SemanticTokenTypes)
		mods := 0
		for _, m := range c.modifiers {
			mods |= 1 << indexOf(m, SemanticTokenModifiers)
		}

		start := positionAt(text, tok.Pos.Offset)
		for i, part := range strings.Split(tok.Value, "\n") {
			part = strings.TrimSuffix(part, "\r")
			char := uint32(0)
			if i == 0 {
				char = start.Character
			}
			if part == "" {
				continue
			}
			tokens = append(tokens, SemanticToken{
				Line:           start.Line + uint32(i),
				StartChar:      char,
				Length:         utf16Len(part),
				TokenType:      tokenType,
				TokenModifiers: mods,
			})
		}
	}
	return tokens, nil
}

// encodeSemanticTokens applies the relative encoding of the LSP wire format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

// indexOf returns the index of target in list, or 0 if absent.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
