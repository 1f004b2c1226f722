package parser

import (
	"fmt"
	"strings"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/vektah/goparsify"
)

// Parse parses one or more GET statements separated by whitespace, newlines or ';'
func Parse(text string) ([]ast.Expression, error) {
	state := goparsify.NewState(text)
	state.WS = goparsify.UnicodeWhitespace

	b := &builder{input: text}
	exprs := []ast.Expression{}

	for {
		skipSeparators(state)

		if state.Pos >= len(state.Input) {
			break
		}

		start := state.Pos
		result := &goparsify.Result{}

		statement(state, result)

		if state.Errored() {
			return nil, unexpectedAt(text, state.Error.Pos(), expectedText(&state.Error))
		}

		raw, ok := result.Result.(*rawStatement)
		if !ok {
			return nil, fmt.Errorf("invalid result type: %T", result.Result)
		}

		get, err := b.statement(raw, strings.TrimSpace(text[start:state.Pos]))
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, get)
	}

	if len(exprs) == 0 {
		return nil, unexpectedAt(text, len(text), "GET")
	}

	return exprs, nil
}

// MustParse parses text and panics on error. Meant for tests.
func MustParse(text string) []ast.Expression {
	exprs, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("unable to parse query %q: %v", text, err))
	}

	return exprs
}

func skipSeparators(state *goparsify.State) {
	for {
		state.WS(state)

		if state.Pos >= len(state.Input) || state.Input[state.Pos] != ';' {
			return
		}

		state.Pos++
	}
}
