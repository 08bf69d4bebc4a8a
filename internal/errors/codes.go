package errors

// Diagnostic codes for the rubyfront front end.
//
// Code ranges:
// E0100-E0199: Parser errors, one per parser.ErrorKind in declaration order
// W0100-W0199: Source warnings (magic comments, trailing data)

const (
	ErrorUnexpectedChar = "E0100"
	ErrorUnexpectedEOF  = "E0101"
	ErrorSpace          = "E0102"
	ErrorLineTerminator = "E0103"
	ErrorNotAtLineStart = "E0104"
	ErrorUnterminated   = "E0105"
	ErrorInvalidNumber  = "E0106"
	ErrorKeyword        = "E0107"

	// E0108: recognised constructs the expression engine does not build
	ErrorNotImplemented = "E0108"

	// E0109: nesting beyond the configured maximum depth
	ErrorTooDeep = "E0109"

	// E0110: a placeholder node survived parsing; always a parser bug
	ErrorPlaceholder = "E0110"
)

const (
	WarningMagicValue   = "W0100"
	WarningMagicUnknown = "W0101"
)

var descriptions = map[string]string{
	ErrorUnexpectedChar: "Unexpected character",
	ErrorUnexpectedEOF:  "Unexpected end of input",
	ErrorSpace:          "Space where none is allowed",
	ErrorLineTerminator: "Line break where none is allowed",
	ErrorNotAtLineStart: "Construct must start at the beginning of a line",
	ErrorUnterminated:   "Unterminated literal or bracket",
	ErrorInvalidNumber:  "Malformed numeric literal",
	ErrorKeyword:        "Reserved word used as a name",
	ErrorNotImplemented: "Construct not supported",
	ErrorTooDeep:        "Nesting too deep",
	ErrorPlaceholder:    "Internal parser error",
	WarningMagicValue:   "Invalid magic comment value",
	WarningMagicUnknown: "Unrecognised encoding in magic comment",
}

// Description returns a one-line description of the code, or "Unknown error".
func Description(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown error"
}

// IsWarning reports whether code is a warning code.
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// Category returns the broad category of a code.
func Category(code string) string {
	if len(code) != 5 {
		return "Unknown"
	}
	if IsWarning(code) {
		return "Warning"
	}
	switch code[1:3] {
	case "01":
		return "Parser"
	default:
		return "Unknown"
	}
}
