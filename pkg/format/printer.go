package format

import (
	"strings"

	"github.com/pseudomuto/sqlbeautify/pkg/dialect"
)

// subqueryStarts are the clause keywords that make a parenthesized group a
// nested query rather than an expression.
var subqueryStarts = map[string]bool{
	"select":          true,
	"select distinct": true,
	"select all":      true,
	"with":            true,
	"with recursive":  true,
	"values":          true,
}

// lineWriter accumulates the words of one physical line.
type lineWriter struct {
	buf  strings.Builder
	prev *word
	glue bool
}

// Printer lays out one statement. Lines are built word by word; depth is the
// indent level of the line currently being written.
type printer struct {
	dialect *dialect.Dialect
	options FormatterOptions

	lines []string
	line  lineWriter
	depth int
}

// scope is the layout state of one nesting level: a statement or the inside of
// a parenthesized group.
type scope struct {
	base    int
	content int
	query   bool
	cases   []int
	between bool
}

func newPrinter(d *dialect.Dialect, options FormatterOptions) *printer {
	return &printer{dialect: d, options: options}
}

// String returns the formatted statement.
func (p *printer) String() string {
	p.flush()
	return strings.Join(p.lines, "\n")
}

func (p *printer) statement(s *statement) {
	p.block(s.nodes, 0, true)
	if s.terminated {
		p.write(&word{text: ";", lower: ";", kind: dialect.KindPunct})
	}
}

func (p *printer) block(nodes []*node, base int, query bool) {
	s := &scope{base: base, content: base, query: query}
	for _, n := range nodes {
		if n.isGroup() {
			p.group(n)
			continue
		}

		p.word(n.word, s)
	}
}

func (p *printer) word(w *word, s *scope) {
	if w.isComment() {
		p.comment(w)
		return
	}

	if w.is(",") {
		p.write(w)
		if len(s.cases) == 0 {
			p.newline(s.content)
		}
		return
	}

	if w.kind != dialect.KindWord {
		p.write(w)
		return
	}

	switch lw := w.lower; {
	case s.query && p.dialect.IsClause(lw):
		p.newline(s.base)
		p.write(w)
		s.content = s.base + 1
		s.cases = nil
		s.between = false
		p.newline(s.content)
	case s.query && p.dialect.IsSetOperator(lw):
		p.newline(s.base)
		p.write(w)
		s.content = s.base
		p.newline(s.base)
	case s.query && p.dialect.IsJoin(lw):
		p.newline(s.content)
		p.write(w)
	case lw == "case":
		p.write(w)
		s.cases = append(s.cases, p.depth)
	case len(s.cases) > 0 && (lw == "when" || lw == "else"):
		p.newline(s.cases[len(s.cases)-1] + 1)
		p.write(w)
	case len(s.cases) > 0 && lw == "end":
		p.newline(s.cases[len(s.cases)-1])
		p.write(w)
		s.cases = s.cases[:len(s.cases)-1]
	case lw == "between" || strings.HasSuffix(lw, " between"):
		s.between = true
		p.write(w)
	case lw == "and" && s.between:
		s.between = false
		p.write(w)
	case (lw == "and" || lw == "or") && len(s.cases) == 0:
		p.newline(s.content)
		p.write(w)
	default:
		p.write(w)
	}
}

// group writes a parenthesized group. Short expressions stay on the current
// line; subqueries, CASE expressions, comments and long expressions open a
// block whose closing parenthesis returns to the opening line's depth.
func (p *printer) group(g *node) {
	subquery := p.startsQuery(g.children)

	if !subquery && !g.hasCaseOrComment() {
		var flat lineWriter
		p.flatten(&flat, g.children)
		if flat.buf.Len() <= p.options.ExpressionWidth {
			p.write(g.open)
			p.line.buf.WriteString(flat.buf.String())
			p.write(g.close)
			return
		}
	}

	depth := p.depth
	p.write(g.open)
	if !subquery {
		p.newline(depth + 1)
	}
	p.block(g.children, depth+1, subquery)
	p.newline(depth)
	p.write(g.close)
}

func (p *printer) startsQuery(nodes []*node) bool {
	for _, n := range nodes {
		if n.isGroup() {
			return false
		}
		if n.word.isComment() {
			continue
		}

		return n.word.kind == dialect.KindWord && subqueryStarts[n.word.lower]
	}

	return false
}

func (p *printer) flatten(lw *lineWriter, nodes []*node) {
	for _, n := range nodes {
		if n.isGroup() {
			p.put(lw, n.open)
			p.flatten(lw, n.children)
			p.put(lw, n.close)
			continue
		}

		p.put(lw, n.word)
	}
}

func (p *printer) comment(w *word) {
	if w.newlineBefore {
		p.newline(p.depth)
	}

	p.write(w)
	if w.kind == dialect.KindLineComment {
		p.newline(p.depth)
	}
}

// newline ends the current line, if it has content, and sets the depth of the
// next one.
func (p *printer) newline(depth int) {
	if p.line.buf.Len() > 0 {
		p.flush()
	}

	p.depth = depth
}

func (p *printer) flush() {
	if p.line.buf.Len() == 0 {
		return
	}

	text := strings.TrimRight(p.line.buf.String(), " ")
	p.lines = append(p.lines, strings.Repeat(" ", p.depth*p.options.IndentSize)+text)
	p.line = lineWriter{}
}

func (p *printer) write(w *word) {
	p.put(&p.line, w)
}

func (p *printer) put(lw *lineWriter, w *word) {
	if lw.buf.Len() > 0 && !lw.glue && p.spaceBetween(lw.prev, w) {
		lw.buf.WriteByte(' ')
	}

	lw.glue = p.unary(lw.prev, w)
	lw.buf.WriteString(p.render(w))
	lw.prev = w
}

func (p *printer) render(w *word) string {
	if w.keyword && p.options.UppercaseKeywords {
		return strings.ToUpper(w.text)
	}

	return w.text
}

func (p *printer) spaceBetween(prev, cur *word) bool {
	if prev == nil {
		return false
	}

	if cur.is(",") || cur.is(";") || cur.is(")") || cur.is("]") || cur.is(".") || cur.is("::") {
		return false
	}

	if prev.is("(") || prev.is("[") || prev.is(".") || prev.is("::") {
		return false
	}

	if cur.is("(") || cur.is("[") {
		switch {
		case prev.kind == dialect.KindWord && prev.keyword:
			return !p.dialect.IsFunctionKeyword(prev.text)
		case prev.kind == dialect.KindWord || prev.kind == dialect.KindQuotedIdent:
			// function calls and subscripts keep the author's spacing
			return cur.spaceBefore
		case prev.is(")") || prev.is("]"):
			return cur.is("(")
		}
	}

	return true
}

// unary reports whether cur is a sign operator that binds to the next word.
func (p *printer) unary(prev, cur *word) bool {
	if !cur.is("-") && !cur.is("+") {
		return false
	}

	switch {
	case prev == nil:
		return true
	case prev.kind == dialect.KindOperator:
		return true
	case prev.is("(") || prev.is(",") || prev.is("["):
		return true
	case prev.kind == dialect.KindWord && prev.keyword:
		switch prev.lower {
		case "end", "null", "true", "false", "current_date", "current_time", "current_timestamp":
			return false
		}
		return true
	}

	return false
}
