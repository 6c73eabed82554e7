package beautify

import (
	"regexp"
	"unicode/utf8"
)

var (
	caseWord     = regexp.MustCompile(`(?i)\bcase\b`)
	endWord      = regexp.MustCompile(`(?i)\bend\b`)
	trailingCase = regexp.MustCompile(`(?i)\bcase$`)
)

// RewriteCaseStack indents CASE expressions from a stack of open CASE columns.
// WHEN, THEN and ELSE sit at the CASE column + 4, any other line inside the
// CASE at + 8 and END back at the CASE column. An END with nothing open is left
// alone.
//
// A CASE may start a line or end one ("select  case", "then case"); in the
// second form the column of the keyword itself is pushed.
func RewriteCaseStack(d Document) Document {
	out := make(Document, len(d))
	var stack []int

	for i, l := range d {
		out[i] = l
		if l.Blank() {
			continue
		}

		t := l.Trimmed()
		if l.HasKeyword("case") {
			// "case when a then 1 else 0 end" opens nothing.
			if len(caseWord.FindAllString(t, -1)) > len(endWord.FindAllString(t, -1)) {
				stack = append(stack, l.Indent())
			}
			continue
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			switch {
			case l.HasKeyword("end"):
				out[i] = l.WithIndent(top)
				stack = stack[:len(stack)-1]
			case l.HasKeyword("when", "then", "else"):
				out[i] = l.WithIndent(top + stepOffset)
			default:
				out[i] = l.WithIndent(top + fieldOffset)
			}
		}

		if trailingCase.MatchString(t) {
			col := out[i].Indent() + utf8.RuneCountInString(t) - len("case")
			stack = append(stack, col)
		}
	}

	return out
}
