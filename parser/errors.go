package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vektah/goparsify"
)

const endOfInput = "end of input"

// UnexpectedTokenError reports the lexeme the parser could not accept and where it sits
type UnexpectedTokenError struct {
	Token string
	// Offset is the byte offset of Token in the query text
	Offset int
	// Line and Column (in runes) locate Offset, both 1 based
	Line   int
	Column int
	// Expected describes what would have been accepted, if known
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	msg := fmt.Sprintf("unexpected token %q at line %d column %d", e.Token, e.Line, e.Column)
	if e.Expected != "" {
		msg += ": expected " + e.Expected
	}

	return msg
}

func unexpectedAt(input string, offset int, expected string) *UnexpectedTokenError {
	line, col := coordinates(input, offset)

	return &UnexpectedTokenError{
		Token:    lexemeAt(input, offset),
		Offset:   offset,
		Line:     line,
		Column:   col,
		Expected: expected,
	}
}

func unexpectedToken(input string, tok token, expected string) *UnexpectedTokenError {
	err := unexpectedAt(input, tok.pos, expected)
	err.Token = tok.text

	return err
}

// lexemeAt returns the whitespace delimited word starting at offset
func lexemeAt(input string, offset int) string {
	if offset >= len(input) {
		return endOfInput
	}

	rest := strings.TrimLeftFunc(input[offset:], unicode.IsSpace)
	if rest == "" {
		return endOfInput
	}

	if end := strings.IndexFunc(rest, unicode.IsSpace); end > 0 {
		return rest[:end]
	}

	return rest
}

// coordinates returns the line and column of offset in input. Offset is in
// bytes, the column counts runes.
func coordinates(input string, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}

	line = 1 + strings.Count(input[:offset], "\n")
	lineStart := strings.LastIndex(input[:offset], "\n") + 1
	col = utf8.RuneCountInString(input[lineStart:offset]) + 1

	return line, col
}

// expectedText extracts the expected text from a goparsify error message
func expectedText(e *goparsify.Error) string {
	msg := e.Error()

	idx := strings.Index(msg, "expected")
	if idx == -1 {
		return msg
	}

	return strings.TrimSpace(msg[idx+len("expected"):])
}
