package beautify

import (
	"regexp"
	"strings"
)

var joinLine = regexp.MustCompile(`(?i)^(?:(?:(?:natural|left|right|full|inner|cross|outer|semi|anti|asof|positional|global|any|array|lateral)\s+){0,3}join|(?:cross|outer)\s+apply|straight_join)\b`)

// clauseKeywords start a new section of a query.
var clauseKeywords = []string{
	"select", "from", "where", "group by", "having", "window", "qualify",
	"order by", "limit", "offset", "fetch", "union", "intersect", "except",
	"minus", "with", "insert", "update", "delete", "merge", "returning",
	"values", "set",
}

func isJoin(l Line) bool {
	return joinLine.MatchString(l.Trimmed())
}

// AnchorJoins moves every JOIN line to the indent of the FROM it belongs to and
// splits an inline ON condition onto its own line, one step deeper. FROM lines
// are kept on a stack so a JOIN following a nested subquery anchors to the FROM
// at its own depth rather than the subquery's. A JOIN with no FROM at or above
// its depth anchors to the last FROM or JOIN seen. When a JOIN opens a
// subquery, the line closing it takes the same anchor and has its ON split off.
func AnchorJoins(d Document) Document {
	out := make(Document, 0, len(d))
	closers := make(map[int]int)
	var froms []int
	last := 0

	for i, l := range d {
		if l.Blank() {
			out = append(out, l)
			continue
		}

		ind := l.Indent()
		for len(froms) > 0 && froms[len(froms)-1] > ind {
			froms = froms[:len(froms)-1]
		}

		if anchor, ok := closers[i]; ok {
			out = append(out, splitClose(l.Trimmed(), anchor)...)
			continue
		}

		switch {
		case l.HasKeyword("from"):
			if len(froms) == 0 || froms[len(froms)-1] != ind {
				froms = append(froms, ind)
			}
			last = ind
		case isJoin(l):
			anchor := last
			if len(froms) > 0 {
				anchor = froms[len(froms)-1]
			}
			last = anchor

			if isGroupHead(l) {
				if end := closingLine(d, i); end > 0 {
					closers[end] = anchor
				}
			}

			out = append(out, splitJoin(l.Trimmed(), anchor)...)
			continue
		}

		out = append(out, l)
	}

	return out
}

func splitJoin(trimmed string, anchor int) []Line {
	head := Line(trimmed).WithIndent(anchor)

	at := indexKeyword(trimmed, "on")
	if at <= 0 {
		return []Line{head}
	}

	return []Line{
		Line(strings.TrimRight(trimmed[:at], " ")).WithIndent(anchor),
		Line(trimmed[at:]).WithIndent(anchor + stepOffset),
	}
}

// splitClose handles the line closing a joined subquery: ") x on a = b"
// becomes ") x" at the anchor with the ON condition one step deeper.
func splitClose(trimmed string, anchor int) []Line {
	parens := len(trimmed) - len(strings.TrimLeft(trimmed, ")"))

	at := indexKeyword(trimmed[parens:], "on")
	if at < 0 {
		return []Line{Line(trimmed).WithIndent(anchor)}
	}

	at += parens
	return []Line{
		Line(strings.TrimRight(trimmed[:at], " ")).WithIndent(anchor),
		Line(trimmed[at:]).WithIndent(anchor + stepOffset),
	}
}

// SweepOnBlocks aligns AND lines that continue an ON condition with the ON
// itself. A parenthesised AND group moves with its head.
func SweepOnBlocks(d Document) Document {
	out := make(Document, len(d))
	copy(out, d)

	on := -1
	for i := 0; i < len(out); i++ {
		l := out[i]
		switch {
		case l.Blank():
		case l.HasKeyword("on"):
			on = l.Indent()
		case on < 0:
		case l.HasKeyword("and"):
			i = moveLine(out, i, on)
		case isJoin(l) || l.HasKeyword(clauseKeywords...) || strings.HasPrefix(l.Trimmed(), ")"):
			on = -1
		}
	}

	return out
}

// moveLine re-indents line i, carrying the parenthesis group it opens along by
// the same amount. It returns the index of the last line moved.
func moveLine(d Document, i, indent int) int {
	delta := indent - d[i].Indent()
	if !isGroupHead(d[i]) {
		d[i] = d[i].WithIndent(indent)
		return i
	}

	end := closingLine(d, i)
	if end < 0 {
		d[i] = d[i].WithIndent(indent)
		return i
	}

	if delta != 0 {
		shiftBy(d[i:end+1], delta)
	}

	return end
}
