package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"rubyfront/internal/lsp"
)

const uri = "file:///tmp/example.rb"

type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				r.published = append(r.published, p)
			}
		},
	}
}

func (r *recorder) last(t *testing.T) []protocol.Diagnostic {
	t.Helper()
	require.NotEmpty(t, r.published)
	return r.published[len(r.published)-1].Diagnostics
}

func open(t *testing.T, h *lsp.RubyHandler, ctx *glsp.Context, text string) {
	t.Helper()
	require.NoError(t, h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "ruby", Text: text},
	}))
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	res, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	result := res.(*protocol.InitializeResult)
	assert.Equal(t, true, result.Capabilities.HoverProvider)
	assert.Equal(t, "rubyfront", result.ServerInfo.Name)
	tokens := result.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	assert.Equal(t, lsp.SemanticTokenTypes, tokens.Legend.TokenTypes)
}

func TestDiagnosticsOnOpenAndChange(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, "x = 1\ny = [1, 2\n")
	diags := rec.last(t)
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(4), diags[0].Range.Start.Character)
	assert.Equal(t, "E0105", diags[0].Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Contains(t, diags[0].Message, "help:")

	require.NoError(t, h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x = 1\ny = [1, 2]\n"}},
	}))
	assert.Empty(t, rec.last(t))
}

func TestRangedChange(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, "a = (1\n")
	require.Len(t, rec.last(t), 1)

	require.NoError(t, h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 6},
				End:   protocol.Position{Line: 0, Character: 6},
			},
			Text: ")",
		}},
	}))
	assert.Empty(t, rec.last(t))

	hover, err := h.TextDocumentHover(ctx, hoverAt(0, 5))
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.(protocol.MarkupContent).Value, "Integer `1`")
}

func TestMagicCommentWarnings(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	rec := &recorder{}
	open(t, h, rec.context(), "# frozen_string_literal: maybe\n1\n")

	diags := rec.last(t)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)
	assert.Equal(t, "W0100", diags[0].Code.Value)
	assert.Equal(t, uint32(0), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(30), diags[0].Range.End.Character)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	rec := &recorder{}
	ctx := rec.context()
	open(t, h, ctx, "1 +")

	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, rec.last(t))

	_, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

func hoverAt(line, char uint32) *protocol.HoverParams {
	return &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	}
}

func TestHover(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	ctx := &glsp.Context{}
	open(t, h, ctx, "total = @count + 1\n")

	hover, err := h.TextDocumentHover(ctx, hoverAt(0, 9))
	require.NoError(t, err)
	require.NotNil(t, hover)
	content := hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "instance `@count`")
	assert.Equal(t, protocol.Position{Line: 0, Character: 8}, hover.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, hover.Range.End)

	hover, err = h.TextDocumentHover(ctx, hoverAt(0, 15))
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.(protocol.MarkupContent).Value, "binary expr")

	hover, err = h.TextDocumentHover(ctx, hoverAt(3, 0))
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestHoverOnBrokenDocument(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	ctx := &glsp.Context{}
	open(t, h, ctx, "x = (")

	hover, err := h.TextDocumentHover(ctx, hoverAt(0, 0))
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	ctx := &glsp.Context{}
	open(t, h, ctx, "# note\nname = \"a#{@b}\"\nFOO = :sym if nil\n=begin\ndoc\n=end\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	expected := []DecodedToken{
		{Line: 1, Char: 1, Length: 6, Type: "comment"},
		{Line: 2, Char: 1, Length: 4, Type: "variable"},
		{Line: 2, Char: 6, Length: 1, Type: "operator"},
		{Line: 2, Char: 8, Length: 1, Type: "string"},
		{Line: 2, Char: 9, Length: 1, Type: "string"},
		{Line: 2, Char: 10, Length: 2, Type: "operator"},
		{Line: 2, Char: 12, Length: 2, Type: "property"},
		{Line: 2, Char: 14, Length: 1, Type: "operator"},
		{Line: 2, Char: 15, Length: 1, Type: "string"},
		{Line: 3, Char: 1, Length: 3, Type: "class", Modifiers: []string{"readonly"}},
		{Line: 3, Char: 5, Length: 1, Type: "operator"},
		{Line: 3, Char: 7, Length: 4, Type: "enumMember"},
		{Line: 3, Char: 12, Length: 2, Type: "keyword"},
		{Line: 3, Char: 15, Length: 3, Type: "keyword", Modifiers: []string{"defaultLibrary"}},
		{Line: 4, Char: 1, Length: 6, Type: "comment"},
		{Line: 5, Char: 1, Length: 3, Type: "comment"},
		{Line: 6, Char: 1, Length: 4, Type: "comment"},
	}
	require.Len(t, decoded, len(expected))
	for i, want := range expected {
		assertToken(t, &decoded[i], want.Line, want.Char, want.Length, want.Type, want.Modifiers)
	}
}

func TestSemanticTokensForCommand(t *testing.T) {
	h := lsp.NewRubyHandler("rubyfront", "test")
	ctx := &glsp.Context{}
	open(t, h, ctx, "`ls #{dir}`\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	expected := []DecodedToken{
		{Line: 1, Char: 1, Length: 1, Type: "string"},
		{Line: 1, Char: 2, Length: 3, Type: "string"},
		{Line: 1, Char: 5, Length: 2, Type: "operator"},
		{Line: 1, Char: 7, Length: 3, Type: "variable"},
		{Line: 1, Char: 10, Length: 1, Type: "operator"},
		{Line: 1, Char: 11, Length: 1, Type: "string"},
	}
	require.Len(t, decoded, len(expected))
	for i, want := range expected {
		assertToken(t, &decoded[i], want.Line, want.Char, want.Length, want.Type, want.Modifiers)
	}
}

type DecodedToken struct {
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if raw[i+4]&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1,
			Length:    raw[i+2],
			Type:      lsp.SemanticTokenTypes[raw[i+3]],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	t.Helper()
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
