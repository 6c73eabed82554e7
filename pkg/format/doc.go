// Package format is the baseline SQL pretty-printer.
//
// It turns raw SQL of any registered dialect into consistently indented text
// without parsing it into an AST. The input is tokenized with the dialect's
// lexer, multi-word keywords are merged, parentheses are paired, and each
// statement is laid out from a small set of rules:
//   - Clause keywords (SELECT, FROM, WHERE, GROUP BY, ...) start a line at the
//     statement's depth and their content continues one level deeper
//   - List commas and AND/OR end or start a line at the content depth
//   - JOINs start a line at the content depth; ON stays on the JOIN line
//   - CASE puts WHEN/ELSE one level deeper than its own line and END back on it
//   - Short parenthesized expressions stay inline; subqueries and long ones open
//     an indented block
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//	out, err := formatter.FormatString("select a, b from t where x = 1")
//
//	// Functional API
//	var buf bytes.Buffer
//	err := format.Format(&buf, format.FormatterOptions{
//		Dialect:           "postgresql",
//		IndentSize:        2,
//		UppercaseKeywords: true,
//	}, sql)
//
// Output for the first example:
//
//	select
//	    a,
//	    b
//	from
//	    t
//	where
//	    x = 1
//
// Input the dialect cannot tokenize and unbalanced parentheses are reported as
// errors; callers that must never fail (the beautify pipeline) fall back to the
// original text.
package format
