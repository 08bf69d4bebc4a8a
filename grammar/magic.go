package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// MagicPair is a "key: value" setting read from a magic comment such as
// "# frozen_string_literal: true" or "# -*- coding: utf-8 -*-".
type MagicPair struct {
	Key   string
	Value string
	Line  int
}

var magicLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Emacs", Pattern: `-\*-`},
	{Name: "Word", Pattern: `[^\s:;]+`},
	{Name: "Punct", Pattern: `[:;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type magicComment struct {
	Emacs *emacsLine `parser:"@@"`
	Pair  *magicPair `parser:"| @@"`
}

type emacsLine struct {
	Pairs []*magicPair `parser:"Emacs ( @@ \";\"? )* Emacs"`
}

type magicPair struct {
	Key   string `parser:"@Word \":\""`
	Value string `parser:"@Word"`
}

var magicParser = participle.MustBuild[magicComment](
	participle.Lexer(magicLexer),
	participle.Elide("Whitespace"),
)

// knownMagic lists the settings the interpreter honours. Other pairs, such
// as "# TODO: fix", are ordinary comments.
var knownMagic = map[string]bool{
	"coding":                   true,
	"encoding":                 true,
	"frozen_string_literal":    true,
	"warn_indent":              true,
	"shareable_constant_value": true,
	"warn_past_scope":          true,
}

// ParseMagicComment reads the settings in a single comment line. text may
// include the leading '#'. ok is false when the comment does not have the
// shape of a magic comment.
func ParseMagicComment(text string) (pairs []MagicPair, ok bool) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "#")
	if !strings.Contains(text, ":") {
		return nil, false
	}
	mc, err := magicParser.ParseString("", text)
	if err != nil {
		return nil, false
	}

	var raw []*magicPair
	if mc.Emacs != nil {
		raw = mc.Emacs.Pairs
	} else if mc.Pair != nil {
		raw = []*magicPair{mc.Pair}
	}

	for _, p := range raw {
		key := strings.ReplaceAll(strings.ToLower(p.Key), "-", "_")
		if !knownMagic[key] {
			continue
		}
		pairs = append(pairs, MagicPair{Key: key, Value: p.Value})
	}
	return pairs, true
}

// LeadingMagicComments scans the comment lines at the top of src and
// collects their settings. Scanning stops at the first line that is neither
// blank nor a comment.
func LeadingMagicComments(src string) []MagicPair {
	var pairs []MagicPair
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
		found, _ := ParseMagicComment(trimmed)
		for _, p := range found {
			p.Line = i + 1
			pairs = append(pairs, p)
		}
	}
	return pairs
}
