package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"rubyfront/internal/ast"
	"rubyfront/internal/parser"
)

var log = commonlog.GetLogger("rubyfront.lsp")

type document struct {
	path   string
	text   string
	result *parser.Result // nil while the text does not parse
}

// RubyHandler implements the language server for Ruby sources. Documents are
// kept in memory as the client sends them.
type RubyHandler struct {
	Name    string
	Version string

	mu      sync.RWMutex
	docs    map[protocol.DocumentUri]*document
	options []parser.Option
}

func NewRubyHandler(name, version string, opts ...parser.Option) *RubyHandler {
	return &RubyHandler{
		Name:    name,
		Version: version,
		docs:    make(map[protocol.DocumentUri]*document),
		options: opts,
	}
}

// Initialize advertises full-text sync, semantic tokens and hover.
func (h *RubyHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    h.Name,
			Version: &h.Version,
		},
	}, nil
}

func (h *RubyHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *RubyHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *RubyHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *RubyHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange applies the changes in order. Whole-document changes
// replace the text; ranged ones splice it.
func (h *RubyHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	h.mu.RLock()
	var text string
	if doc, ok := h.docs[params.TextDocument.URI]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := offsetAt(text, c.Range.Start), offsetAt(text, c.Range.End)
			text = text[:start] + c.Text + text[end:]
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}
	return h.update(ctx, params.TextDocument.URI, text)
}

func (h *RubyHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	// clear what was published for the file
	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (h *RubyHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens, err := collectSemanticTokens(doc.path, doc.text)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", doc.path, err)
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

// TextDocumentHover describes the innermost expression under the cursor. It
// returns nil when the document does not parse or nothing is there.
func (h *RubyHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if doc.result == nil {
		return nil, nil
	}

	offset := offsetAt(doc.text, params.Position)
	node := ast.FindNodeAt(doc.result.Program, offset)
	if node == nil {
		return nil, nil
	}
	if _, ok := node.(*ast.Program); ok {
		return nil, nil
	}

	start, end := node.NodePos().Offset, node.NodeEndPos().Offset
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describe(node),
		},
		Range: &protocol.Range{Start: positionAt(doc.text, start), End: positionAt(doc.text, end)},
	}, nil
}

// describe renders a hover for node.
func describe(node ast.Node) string {
	var title string
	switch n := node.(type) {
	case *ast.Ident:
		title = fmt.Sprintf("%s `%s`", n.Kind, n.Name)
	case *ast.IntegerLit:
		title = fmt.Sprintf("Integer `%s`", n.Value)
	case *ast.FloatLit:
		title = fmt.Sprintf("Float `%v`", n.Value)
	case *ast.PseudoVar:
		title = fmt.Sprintf("%s = `%s`", n.Name, n.Value)
	default:
		title = strings.ToLower(strings.ReplaceAll(node.NodeType().String(), "_", " "))
	}
	return fmt.Sprintf("**%s**\n\n```\n%s\n```", title, node.String())
}

func (h *RubyHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	result, diagnostics := Diagnose(path, text, h.options...)

	h.mu.Lock()
	h.docs[uri] = &document{path: path, text: text, result: result}
	h.mu.Unlock()

	publish(ctx, uri, diagnostics)
	return nil
}

func (h *RubyHandler) document(uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.docs[uri]
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}
	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/... on Windows
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
