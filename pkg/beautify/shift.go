package beautify

import (
	"strings"

	"github.com/kr/text"
)

const (
	// fieldOffset is how far SELECT columns and CASE bodies sit past their
	// anchor.
	fieldOffset = 8

	// stepOffset is one nesting step: predicates under WHERE, WHEN under CASE,
	// the interior of a parenthesis group and an ON split off its JOIN.
	stepOffset = 4
)

// shiftTo moves lines as a block so their smallest indent becomes target,
// keeping relative nesting. Blank lines are left alone.
func shiftTo(lines []Line, target int) []Line {
	from := minIndent(lines)
	if from < 0 || from == target {
		return lines
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if !l.Blank() {
			b.WriteString(string(l)[from:])
		}
	}

	shifted := strings.Split(text.Indent(b.String(), strings.Repeat(" ", max(0, target))), "\n")
	out := make([]Line, len(lines))
	for i, l := range lines {
		if l.Blank() {
			out[i] = l
			continue
		}
		out[i] = Line(shifted[i])
	}

	return out
}

// shiftBy moves every non-blank line by delta spaces.
func shiftBy(lines []Line, delta int) {
	for i, l := range lines {
		if !l.Blank() {
			lines[i] = l.WithIndent(l.Indent() + delta)
		}
	}
}

// retab converts leading runs of width spaces into tabs.
func retab(d Document, width int) Document {
	out := make(Document, len(d))
	for i, l := range d {
		if l.Blank() {
			out[i] = l
			continue
		}

		n := l.Indent()
		out[i] = Line(strings.Repeat("\t", n/width) + strings.Repeat(" ", n%width) + strings.TrimLeft(string(l), " "))
	}

	return out
}
