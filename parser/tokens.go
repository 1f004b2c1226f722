package parser

import (
	"strings"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/helper/hex"
	"github.com/vektah/goparsify"
)

// token is a lexeme and its byte offset in the query
type token struct {
	text string
	pos  int
}

// reserved words never parse as identifiers or values
var reserved = map[string]struct{}{
	"get":   {},
	"from":  {},
	"where": {},
	"on":    {},
}

func isReserved(word string) bool {
	_, ok := reserved[strings.ToLower(word)]

	return ok
}

func isIdentChar(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// scan consumes the longest run of bytes accepted by accept and stores it as a token
func scan(description string, accept func(c byte) bool, check func(word string) bool) goparsify.Parser {
	return goparsify.NewParser(description, func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)

		end := ps.Pos
		for end < len(ps.Input) && accept(ps.Input[end]) {
			end++
		}

		word := ps.Input[ps.Pos:end]
		if word == "" || (check != nil && !check(word)) {
			ps.ErrorHere(description)

			return
		}

		node.Token = word
		node.Result = token{text: word, pos: ps.Pos}
		ps.Pos = end
	})
}

// keyword matches word ignoring case, and only as a whole word
func keyword(word string) goparsify.Parser {
	n := len(word)

	return goparsify.NewParser(word, func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)

		in := ps.Get()
		if len(in) < n || !strings.EqualFold(word, in[:n]) || (len(in) > n && isIdentChar(in[n])) {
			ps.ErrorHere(word)

			return
		}

		node.Token = in[:n]
		node.Result = token{text: in[:n], pos: ps.Pos}
		ps.Advance(n)
	})
}

// identifier matches entity names
func identifier() goparsify.Parser {
	return scan("identifier", isIdentChar, func(word string) bool {
		return !isReserved(word) && !('0' <= word[0] && word[0] <= '9')
	})
}

// filterKey matches the keyword that opens a WHERE clause. "from" is a valid key.
func filterKey() goparsify.Parser {
	return scan("filter", isIdentChar, func(word string) bool {
		return (strings.EqualFold(word, "from") || !isReserved(word)) && !('0' <= word[0] && word[0] <= '9')
	})
}

// fieldName matches one entry of the field list. "from" is accepted as a field
// only when a separator or the FROM keyword follows it.
func fieldName() goparsify.Parser {
	ident := scan("field", isIdentChar, func(word string) bool {
		return !('0' <= word[0] && word[0] <= '9')
	})

	return goparsify.NewParser("field", func(ps *goparsify.State, node *goparsify.Result) {
		start := ps.Pos

		ident(ps, node)

		if ps.Errored() {
			return
		}

		word := node.Token
		if !isReserved(word) {
			return
		}

		if strings.EqualFold(word, "from") && followedByFieldEnd(ps.Input[ps.Pos:]) {
			return
		}

		ps.Pos = node.Result.(token).pos
		ps.ErrorHere("field")
		ps.Pos = start
	})
}

func followedByFieldEnd(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if strings.HasPrefix(rest, ",") {
		return true
	}

	return len(rest) >= 4 && strings.EqualFold(rest[:4], "from") && (len(rest) == 4 || !isIdentChar(rest[4]))
}

// value matches ids, filter values and chain targets: anything up to
// whitespace or a list separator
func value() goparsify.Parser {
	return scan("value", func(c byte) bool {
		return !isSpace(c) && c != ',' && c != ';'
	}, func(word string) bool {
		return !isReserved(word) && !strings.HasPrefix(word, ">>")
	})
}

// blockPoint matches one end of a block range: a height or a block tag
func blockPoint() goparsify.Parser {
	return scan("block number or tag", isIdentChar, func(word string) bool {
		if hex.Has0xPrefix(word) {
			return hex.IsHex(word)
		}

		_, err := ast.ParseBlockNumberOrTag(word)

		return err == nil
	})
}

// signature matches an event signature such as Transfer(address,address,uint256)
func signature() goparsify.Parser {
	return goparsify.NewParser("event signature", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)

		end := ps.Pos
		for end < len(ps.Input) && isIdentChar(ps.Input[end]) {
			end++
		}

		if end == ps.Pos || end >= len(ps.Input) || ps.Input[end] != '(' {
			ps.ErrorHere("event signature")

			return
		}

		depth := 0

		for ; end < len(ps.Input); end++ {
			switch ps.Input[end] {
			case '(':
				depth++
			case ')':
				depth--
			}

			if depth == 0 {
				break
			}
		}

		if depth != 0 {
			ps.ErrorHere("closing parenthesis")

			return
		}

		end++ // include the closing parenthesis

		word := ps.Input[ps.Pos:end]
		node.Token = word
		node.Result = rawID{start: token{text: word, pos: ps.Pos}}
		ps.Pos = end
	})
}
