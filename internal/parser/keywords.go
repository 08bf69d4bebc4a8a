package parser

import (
	"sort"

	"rubyfront/internal/cursor"
)

// Keywords is Ruby's reserved word list.
var Keywords = []string{
	"__ENCODING__", "__LINE__", "__FILE__", "BEGIN", "END",
	"alias", "and", "begin", "break", "case", "class", "def", "defined?",
	"do", "else", "elsif", "end", "ensure", "false", "for", "if", "in",
	"module", "next", "nil", "not", "or", "redo", "rescue", "retry",
	"return", "self", "super", "then", "true", "undef", "unless", "until",
	"when", "while", "yield",
}

// keywordsByLength holds the reserved words longest first so the recogniser
// always takes the longest match.
var keywordsByLength = func() []string {
	kws := append([]string(nil), Keywords...)
	sort.SliceStable(kws, func(i, j int) bool { return len(kws[i]) > len(kws[j]) })
	return kws
}()

// keyword matches the longest reserved word at the cursor. It does not
// check what follows; "truely" matches "true" with "ly" left over.
func keyword(in Input) (Input, string, error) {
	for _, kw := range keywordsByLength {
		if in.HasPrefix(kw) {
			return in.AdvanceString(kw), kw, nil
		}
	}
	return in, "", expected(in, "keyword")
}

// IsKeyword reports whether text is exactly a reserved word: the keyword
// recogniser must consume all of it.
func IsKeyword(text string) bool {
	out, _, err := keyword(cursor.New(text, State{}))
	return err == nil && out.AtEOF()
}
