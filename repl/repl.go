// Package repl reads Ruby expressions interactively and prints their trees.
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"rubyfront/grammar"
	"rubyfront/internal/errors"
	"rubyfront/internal/parser"
)

const (
	Prompt         = ">> "
	ContinuePrompt = ".. "
	historyFile    = ".rubyfront_history"
	sourceName     = "(repl)"
)

var log = commonlog.GetLogger("rubyfront.repl")

// LineReader is the part of liner.State a session needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type Session struct {
	in      LineReader
	out     io.Writer
	options []parser.Option
	tokens  bool
}

func NewSession(in LineReader, out io.Writer, opts ...parser.Option) *Session {
	return &Session{in: in, out: out, options: opts}
}

// Start runs an interactive session on the terminal with history kept in the
// user's home directory.
func Start(out io.Writer, opts ...parser.Option) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	err := NewSession(ln, out, opts...).Run()

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			log.Warningf("saving history: %s", err)
		}
	}
	return err
}

// Run reads and evaluates inputs until end of input or :quit.
func (s *Session) Run() error {
	for {
		src, ok := s.Read()
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if commands[strings.ToLower(trimmed)] {
			if quit := s.command(trimmed); quit {
				return nil
			}
			continue
		}

		s.Eval(src)
		s.in.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// Read collects lines until they parse or fail for a reason other than
// running out of input. It reports false at end of input.
func (s *Session) Read() (string, bool) {
	var b strings.Builder
	for {
		prompt := Prompt
		if b.Len() > 0 {
			prompt = ContinuePrompt
		}
		line, err := s.in.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if stderrors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Errorf("reading input: %s", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if commands[strings.ToLower(strings.TrimSpace(src))] {
			return src, true
		}
		_, perr := parser.Parse(sourceName, src, s.options...)
		var pe *parser.ParseError
		if stderrors.As(perr, &pe) && pe.Incomplete() {
			continue
		}
		return src, true
	}
}

// Eval parses src and prints each statement's tree, or the diagnostic.
func (s *Session) Eval(src string) {
	if s.tokens {
		if toks, err := grammar.Tokens(sourceName, src); err == nil {
			_ = grammar.WriteTokens(s.out, toks)
		}
	}

	res, err := parser.Parse(sourceName, src, s.options...)
	if err != nil {
		if d, ok := errors.FromError(err); ok {
			fmt.Fprint(s.out, errors.NewReporter(sourceName, src).Format(d))
		} else {
			fmt.Fprintln(s.out, color.RedString(err.Error()))
		}
		return
	}

	arrow := color.CyanString("=>")
	for _, stmt := range res.Program.Body.Statements {
		fmt.Fprintf(s.out, "%s %s\n", arrow, stmt.String())
	}
	if res.Trailing != nil {
		fmt.Fprintf(s.out, "%s %q\n", color.New(color.Faint).Sprint("__END__"), *res.Trailing)
	}
}

// commands shadow the symbols of the same name.
var commands = map[string]bool{":quit": true, ":q": true, ":exit": true, ":tokens": true, ":help": true}

func (s *Session) command(cmd string) (quit bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":tokens":
		s.tokens = !s.tokens
		fmt.Fprintf(s.out, "token display %s\n", onOff(s.tokens))
	case ":help":
		fmt.Fprintln(s.out, "Enter Ruby expressions. Unfinished input continues on the next line.")
		fmt.Fprintln(s.out, "  :tokens  toggle the highlighting token dump")
		fmt.Fprintln(s.out, "  :quit    leave")
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
