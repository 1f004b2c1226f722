package parser

import (
	"strings"

	p "github.com/vektah/goparsify"
)

// rawID is an id or filter value as written: a single token or a start:end range
type rawID struct {
	start   token
	isRange bool
	end     *token
}

type rawFilter struct {
	key   token
	op    string
	value rawID
}

type rawStatement struct {
	wildcard bool
	fields   []token
	entity   token
	ids      []rawID
	filters  []rawFilter
	on       token
	target   token
	dump     *token
}

type wildcardMarker struct{}

var statement p.Parser

func init() {
	fieldList := p.Any(
		p.Bind("*", wildcardMarker{}),
		list(fieldName(), ",").Map(tokens),
	)

	rangeID := p.Seq(blockPoint(), ":", p.Maybe(blockPoint())).Map(func(n *p.Result) {
		id := rawID{start: n.Child[0].Result.(token), isRange: true}
		if end, ok := n.Child[2].Result.(token); ok {
			id.end = &end
		}

		n.Result = id
	})
	singleID := value().Map(func(n *p.Result) {
		n.Result = rawID{start: n.Result.(token)}
	})
	idList := list(p.Any(rangeID, singleID), ",").Map(func(n *p.Result) {
		ids := make([]rawID, 0, len(n.Child))
		for _, child := range n.Child {
			ids = append(ids, child.Result.(rawID))
		}

		n.Result = ids
	})

	operator := p.Any(">=", "<=", "!=", "==", "=", ">", "<")
	filterValue := p.Any(signature(), rangeID, singleID)
	filterClause := p.Seq(filterKey(), p.Maybe(operator), filterValue).Map(func(n *p.Result) {
		n.Result = rawFilter{
			key:   n.Child[0].Result.(token),
			op:    n.Child[1].Token,
			value: n.Child[2].Result.(rawID),
		}
	})
	whereClause := p.Seq(keyword("WHERE"), p.Cut(), list(filterClause, ",")).Map(func(n *p.Result) {
		filters := make([]rawFilter, 0, len(n.Child[2].Child))
		for _, child := range n.Child[2].Child {
			filters = append(filters, child.Result.(rawFilter))
		}

		n.Result = filters
	})

	dump := p.Seq(">>", p.Cut(), value()).Map(func(n *p.Result) {
		n.Result = n.Child[2].Result
	})

	statement = p.Seq(
		keyword("GET"), p.Cut(),
		fieldList,
		keyword("FROM"),
		identifier(),
		p.Maybe(idList),
		p.Maybe(whereClause),
		keyword("ON"),
		value(),
		p.Maybe(dump),
	).Map(func(n *p.Result) {
		stmt := &rawStatement{
			entity: n.Child[4].Result.(token),
			on:     n.Child[7].Result.(token),
			target: n.Child[8].Result.(token),
		}

		switch fields := n.Child[2].Result.(type) {
		case wildcardMarker:
			stmt.wildcard = true
		case []token:
			stmt.fields = fields
		}

		if ids, ok := n.Child[5].Result.([]rawID); ok {
			stmt.ids = ids
		}

		if filters, ok := n.Child[6].Result.([]rawFilter); ok {
			stmt.filters = filters
		}

		if file, ok := n.Child[9].Result.(token); ok {
			stmt.dump = &file
		}

		n.Result = stmt
	})
}

func tokens(n *p.Result) {
	out := make([]token, 0, len(n.Child))
	for _, child := range n.Child {
		out = append(out, child.Result.(token))
	}

	n.Result = out
}

// list matches one or more items separated by sep. A separator commits to
// another item, so a dangling separator fails instead of being dropped.
func list(item p.Parser, sep string) p.Parser {
	return p.NewParser("list", func(ps *p.State, node *p.Result) {
		start := ps.Pos
		node.Child = make([]p.Result, 0, 4)

		for {
			var child p.Result

			item(ps, &child)

			if ps.Errored() {
				ps.Pos = start

				return
			}

			node.Child = append(node.Child, child)

			next := ps.Pos
			ps.WS(ps)

			if !strings.HasPrefix(ps.Get(), sep) {
				ps.Pos = next

				return
			}

			ps.Advance(len(sep))
			ps.Cut = ps.Pos
		}
	})
}
