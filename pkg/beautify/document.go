package beautify

import (
	"strings"
	"unicode/utf8"
)

// Line is one line of a Document.
type Line string

// Indent is the number of leading spaces.
func (l Line) Indent() int {
	return len(l) - len(strings.TrimLeft(string(l), " "))
}

// Trimmed is the line without surrounding whitespace.
func (l Line) Trimmed() string {
	return strings.TrimSpace(string(l))
}

// Blank reports whether the line holds only whitespace.
func (l Line) Blank() bool {
	return l.Trimmed() == ""
}

// WithIndent returns the line re-indented to n spaces (negative means 0).
func (l Line) WithIndent(n int) Line {
	return Line(strings.Repeat(" ", max(0, n)) + strings.TrimLeft(string(l), " "))
}

// HasKeyword reports whether the trimmed line starts with one of the given
// keywords, case-insensitively, followed by a non-word character or the end of
// the line. Multi-word keywords are matched with single spaces.
func (l Line) HasKeyword(keywords ...string) bool {
	lower := strings.ToLower(l.Trimmed())
	for _, kw := range keywords {
		if !strings.HasPrefix(lower, kw) {
			continue
		}

		if len(lower) == len(kw) || !isWordByte(lower[len(kw)]) {
			return true
		}
	}

	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= utf8.RuneSelf
}

// Document is text split into lines. Stages never modify a Document in place;
// they return a new one.
type Document []Line

// NewDocument splits text on line breaks.
func NewDocument(text string) Document {
	parts := strings.Split(text, "\n")
	doc := make(Document, len(parts))
	for i, p := range parts {
		doc[i] = Line(p)
	}

	return doc
}

// String joins the lines back together.
func (d Document) String() string {
	var b strings.Builder
	for i, l := range d {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(l))
	}

	return b.String()
}

// rewriteText applies a text-level rewrite to a Document.
func rewriteText(d Document, fn func(string) string) Document {
	return NewDocument(fn(d.String()))
}

// minIndent returns the smallest indent among non-blank lines, or -1.
func minIndent(lines []Line) int {
	m := -1
	for _, l := range lines {
		if l.Blank() {
			continue
		}

		if ind := l.Indent(); m < 0 || ind < m {
			m = ind
		}
	}

	return m
}

// openQuotes reports, for each line, whether it begins inside a quoted string,
// quoted identifier or block comment opened on an earlier line. Those lines
// are content, not layout.
func openQuotes(d Document) []bool {
	inside := make([]bool, len(d))
	var quote byte
	comment := false

	for i, l := range d {
		inside[i] = quote != 0 || comment

		s := string(l)
	scan:
		for j := 0; j < len(s); j++ {
			c := s[j]
			switch {
			case comment:
				if c == '*' && j+1 < len(s) && s[j+1] == '/' {
					comment = false
					j++
				}
			case quote != 0:
				if c == quote {
					quote = 0
				}
			case c == '\'' || c == '"' || c == '`':
				quote = c
			case c == '-' && j+1 < len(s) && s[j+1] == '-':
				break scan
			case c == '/' && j+1 < len(s) && s[j+1] == '*':
				comment = true
				j++
			}
		}
	}

	return inside
}

// parenBalance counts opening minus closing parentheses outside of quoted
// strings, quoted identifiers and line comments.
func parenBalance(s string) int {
	n := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '-' && i+1 < len(s) && s[i+1] == '-':
			return n
		case c == '(':
			n++
		case c == ')':
			n--
		}
	}

	return n
}

// indexKeyword finds the first standalone occurrence of kw (lower case) in s at
// parenthesis depth 0, outside quotes. It returns -1 when there is none.
func indexKeyword(s, kw string) int {
	lower := strings.ToLower(s)
	depth := 0
	var quote byte

	for i := 0; i < len(lower); i++ {
		c := lower[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			continue
		case c == '\'' || c == '"' || c == '`':
			quote = c
			continue
		case c == '(':
			depth++
			continue
		case c == ')':
			depth--
			continue
		}

		if depth != 0 || !strings.HasPrefix(lower[i:], kw) {
			continue
		}

		before := i == 0 || !isWordByte(lower[i-1])
		after := i+len(kw) == len(lower) || !isWordByte(lower[i+len(kw)])
		if before && after {
			return i
		}
	}

	return -1
}
