package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token is a highlighting token with its symbolic kind resolved.
type Token struct {
	Kind  string
	Value string
	Pos   lexer.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Pos.Line, t.Pos.Column, t.Kind, t.Value)
}

// Trivia reports whether the token carries no meaning for highlighting.
func (t Token) Trivia() bool {
	return t.Kind == "Whitespace" || t.Kind == "Newline"
}

var kindNames = func() map[lexer.TokenType]string {
	names := map[lexer.TokenType]string{}
	for name, typ := range RubyLexer.Symbols() {
		names[typ] = name
	}
	return names
}()

// Tokens lexes src for highlighting. Whitespace and newlines are dropped.
func Tokens(filename, src string) ([]Token, error) {
	lex, err := RubyLexer.LexString(filename, src)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}
		t := Token{Kind: kindNames[tok.Type], Value: tok.Value, Pos: tok.Pos}
		if t.Trivia() {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// WriteTokens prints one token per line in the form used by the CLI.
func WriteTokens(w io.Writer, tokens []Token) error {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
