package beautify

import (
	"regexp"
	"strings"
)

var cteHead = regexp.MustCompile(`(?i)^(?:with\s+(?:recursive\s+)?)?\w+\s+as\s*(?:(?:not\s+)?materialized\s*)?\($`)

// whereTerminators end a WHERE clause.
var whereTerminators = []string{
	"group by", "order by", "having", "limit", "offset", "fetch", "window",
	"qualify", "returning", "select", "insert", "update", "delete", "union",
	"intersect", "except", "minus",
}

// caseKeywords belong to the CASE stack and are never clamped here.
var caseKeywords = []string{"case", "when", "then", "else", "end"}

// isGroupHead reports whether l opens a parenthesis group that is laid out one
// step deeper than the line: a predicate head (and/or/on/where/having), a FROM
// or JOIN over a subquery, or a CTE definition.
func isGroupHead(l Line) bool {
	t := l.Trimmed()
	if !strings.HasSuffix(t, "(") || parenBalance(t) <= 0 {
		return false
	}

	return l.HasKeyword("and", "or", "on", "where", "having", "from") || isJoin(l) || cteHead.MatchString(t)
}

// closingLine returns the index of the line holding the parenthesis that closes
// the group opened at i, or -1 if it is missing or shares its line with other
// content before it.
func closingLine(d Document, i int) int {
	depth := parenBalance(d[i].Trimmed())
	for j := i + 1; j < len(d); j++ {
		depth += parenBalance(d[j].Trimmed())
		if depth > 0 {
			continue
		}

		if strings.HasPrefix(d[j].Trimmed(), ")") {
			return j
		}

		return -1
	}

	return -1
}

// AlignPredicates clamps the continuation lines of a WHERE clause to at most
// the WHERE's indent + 4, then re-indents every parenthesis group so its
// interior sits one step inside its head and the closing paren lines up with
// the head. CASE lines are left for the CASE stack.
func AlignPredicates(d Document) Document {
	return reindentGroups(clampPredicates(d))
}

func clampPredicates(d Document) Document {
	out := make(Document, len(d))
	copy(out, d)

	where := -1
	for i := 0; i < len(out); i++ {
		l := out[i]
		switch {
		case l.Blank():
			continue
		case l.HasKeyword("where"):
			where = l.Indent()
		case where < 0:
			continue
		case l.HasKeyword(whereTerminators...) || strings.HasPrefix(l.Trimmed(), ")"):
			where = -1
			continue
		case l.HasKeyword(caseKeywords...):
		case l.Indent() > where+stepOffset:
			out[i] = l.WithIndent(where + stepOffset)
		}

		// Group interiors are laid out by reindentGroups.
		if isGroupHead(out[i]) {
			if end := closingLine(out, i); end > 0 {
				i = end
			}
		}
	}

	return out
}

func reindentGroups(d Document) Document {
	out := make(Document, len(d))
	copy(out, d)

	for i := range out {
		if !isGroupHead(out[i]) {
			continue
		}

		end := closingLine(out, i)
		if end < 0 {
			continue
		}

		head := out[i].Indent()
		copy(out[i+1:end], shiftTo(out[i+1:end], head+stepOffset))
		out[end] = out[end].WithIndent(head)
	}

	return out
}
