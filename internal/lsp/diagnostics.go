package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"rubyfront/internal/errors"
	"rubyfront/internal/parser"
)

const diagnosticSource = "rubyfront"

// Diagnose parses text and returns the editor diagnostics for it: the parse
// failure, if any, and warnings about the leading magic comments.
func Diagnose(path, text string, opts ...parser.Option) (*parser.Result, []protocol.Diagnostic) {
	diagnostics := []protocol.Diagnostic{}

	result, err := parser.Parse(path, text, opts...)
	if err != nil {
		if d, ok := errors.FromError(err); ok {
			diagnostics = append(diagnostics, convert(text, d))
		} else {
			log.Errorf("parsing %s: %s", path, err)
		}
		return nil, diagnostics
	}

	for _, d := range errors.CheckMagic(path, result.Magic) {
		diagnostics = append(diagnostics, convert(text, d))
	}
	return result, diagnostics
}

// convert turns a rendered-diagnostic value into its LSP form.
func convert(text string, d errors.Diagnostic) protocol.Diagnostic {
	message := d.Message
	if d.HelpText != "" {
		message += "\nhelp: " + d.HelpText
	}
	length := d.Length
	if d.Level == errors.Warning {
		// whole comment line
		length = 1 << 16
	}
	return protocol.Diagnostic{
		Range:    rangeAt(text, d.Position.Line, d.Position.Column, length),
		Severity: ptrSeverity(severity(d.Level)),
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}
}

func severity(level errors.Level) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
