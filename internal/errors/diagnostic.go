package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"rubyfront/grammar"
	"rubyfront/internal/ast"
	"rubyfront/internal/parser"
)

// Level is the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
	Help    Level = "help"
)

// Diagnostic is a located message ready for rendering by a Reporter or
// conversion to an editor diagnostic.
type Diagnostic struct {
	Level    Level
	Code     string       // E0100 and up
	Message  string       // Primary message
	Position ast.Position // Where the problem starts
	Length   int          // Width of the caret marker, in characters
	Notes    []string
	HelpText string
}

// Builder assembles a Diagnostic fluently.
type Builder struct {
	d Diagnostic
}

func NewError(code, message string, pos ast.Position) *Builder {
	return &Builder{d: Diagnostic{Level: Error, Code: code, Message: message, Position: pos, Length: 1}}
}

func NewWarning(code, message string, pos ast.Position) *Builder {
	return &Builder{d: Diagnostic{Level: Warning, Code: code, Message: message, Position: pos, Length: 1}}
}

func (b *Builder) WithLength(length int) *Builder {
	b.d.Length = length
	return b
}

func (b *Builder) WithNote(note string) *Builder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

func (b *Builder) WithHelp(help string) *Builder {
	b.d.HelpText = help
	return b
}

func (b *Builder) Build() Diagnostic {
	return b.d
}

var kindHelp = map[parser.ErrorKind]string{
	parser.KindUnexpectedEOF:  "the input ends in the middle of an expression",
	parser.KindSpace:          "remove the space",
	parser.KindNotAtLineStart: "move it to column 1",
	parser.KindUnterminated:   "add the closing delimiter",
	parser.KindInvalidNumber:  "underscores may only separate digits, and octal literals use the digits 0-7",
	parser.KindKeyword:        "reserved words cannot name variables; rename it",
	parser.KindNotImplemented: "this construct is recognised but not supported yet",
	parser.KindTooDeep:        "reduce the nesting or raise max_depth in the configuration",
	parser.KindPlaceholder:    "this is a parser bug; please report it with the input that caused it",
}

// FromParseError converts a parse failure into an error diagnostic.
func FromParseError(pe *parser.ParseError) Diagnostic {
	pos := ast.Position{
		Filename: pe.Filename,
		Offset:   pe.Position.Offset,
		Line:     pe.Position.Line,
		Column:   pe.Position.Column,
	}
	b := NewError(pe.Kind.Code(), pe.Message, pos)
	if pe.Kind == parser.KindKeyword {
		if name, ok := reservedName(pe.Message); ok {
			b.WithLength(utf8.RuneCountInString(name))
		}
	}
	if pe.Incomplete() {
		b.WithNote("more input could complete this construct")
	}
	if help, ok := kindHelp[pe.Kind]; ok {
		b.WithHelp(help)
	}
	return b.Build()
}

// FromError converts err into a diagnostic when it is, or wraps, a parse
// failure.
func FromError(err error) (Diagnostic, bool) {
	var pe *parser.ParseError
	if !stderrors.As(err, &pe) {
		return Diagnostic{}, false
	}
	return FromParseError(pe), true
}

func reservedName(message string) (string, bool) {
	quoted, _, ok := strings.Cut(message, " is a reserved word")
	if !ok {
		return "", false
	}
	name, err := strconv.Unquote(quoted)
	return name, err == nil
}

var booleanMagic = map[string]bool{
	"frozen_string_literal": true,
	"warn_indent":           true,
	"warn_past_scope":       true,
}

var shareableValues = map[string]bool{
	"none":                    true,
	"literal":                 true,
	"experimental_everything": true,
	"experimental_copy":       true,
}

var encodings = map[string]bool{
	"utf-8":      true,
	"utf8":       true,
	"us-ascii":   true,
	"ascii-8bit": true,
	"binary":     true,
}

// CheckMagic returns warnings for magic comments whose values the
// interpreter would reject or ignore.
func CheckMagic(filename string, pairs []grammar.MagicPair) []Diagnostic {
	var out []Diagnostic
	for _, p := range pairs {
		pos := ast.Position{Filename: filename, Line: p.Line, Column: 1}
		value := strings.ToLower(p.Value)
		switch {
		case booleanMagic[p.Key] && value != "true" && value != "false":
			out = append(out, NewWarning(WarningMagicValue,
				fmt.Sprintf("invalid value for %s: %s", p.Key, p.Value), pos).
				WithHelp("use true or false").Build())
		case p.Key == "shareable_constant_value" && !shareableValues[value]:
			out = append(out, NewWarning(WarningMagicValue,
				fmt.Sprintf("invalid value for %s: %s", p.Key, p.Value), pos).
				WithHelp("use none, literal, experimental_everything or experimental_copy").Build())
		case (p.Key == "coding" || p.Key == "encoding") && !encodings[value]:
			out = append(out, NewWarning(WarningMagicUnknown,
				fmt.Sprintf("source encoding %s is not supported", p.Value), pos).
				WithNote("source text is always read as UTF-8").Build())
		}
	}
	return out
}
