package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/dialect"
)

var (
	// ErrUnbalancedParens is returned when opening and closing parentheses do not pair up.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")

	// ErrUnknownDialect is returned when FormatterOptions.Dialect is not registered.
	ErrUnknownDialect = dialect.ErrUnknownDialect
)

// FormatterOptions controls formatting behavior
type FormatterOptions struct {
	// Dialect selects quoting, comment and keyword rules (see the dialect package)
	Dialect string
	// IndentSize specifies the number of spaces for each indent level
	IndentSize int
	// UppercaseKeywords upper-cases reserved words; otherwise their case is preserved
	UppercaseKeywords bool
	// LinesBetweenQueries is the number of blank lines between statements
	LinesBetweenQueries int
	// ExpressionWidth is the longest parenthesized expression kept on one line
	ExpressionWidth int
}

// Defaults are the standard formatting options.
var Defaults = FormatterOptions{
	Dialect:             "sql",
	IndentSize:          4,
	UppercaseKeywords:   false,
	LinesBetweenQueries: 1,
	ExpressionWidth:     50,
}

// Formatter pretty-prints SQL text with configurable options
type Formatter struct {
	options FormatterOptions
}

// New creates a new Formatter with the specified options. Zero values fall back
// to Defaults, except LinesBetweenQueries and UppercaseKeywords.
func New(options FormatterOptions) *Formatter {
	if options.Dialect == "" {
		options.Dialect = Defaults.Dialect
	}
	if options.IndentSize <= 0 {
		options.IndentSize = Defaults.IndentSize
	}
	if options.ExpressionWidth <= 0 {
		options.ExpressionWidth = Defaults.ExpressionWidth
	}
	if options.LinesBetweenQueries < 0 {
		options.LinesBetweenQueries = 0
	}

	return &Formatter{options: options}
}

// Options returns the effective options of the formatter.
func (f *Formatter) Options() FormatterOptions {
	return f.options
}

// Format formats sql and writes the result to w.
func (f *Formatter) Format(w io.Writer, sql string) error {
	out, err := f.FormatString(sql)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return errors.Wrap(err, "failed to write formatted SQL")
}

// FormatString formats sql and returns the result. The output never ends with a
// line break. Input the dialect cannot tokenize, unbalanced parentheses and an
// unknown dialect are errors; nothing is formatted in that case.
func (f *Formatter) FormatString(sql string) (string, error) {
	d, err := dialect.Lookup(f.options.Dialect)
	if err != nil {
		return "", err
	}

	tokens, err := d.Tokenize(sql)
	if err != nil {
		return "", err
	}

	stmts, err := parseStatements(d, tokens)
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		p := newPrinter(d, f.options)
		p.statement(stmt)
		out = append(out, p.String())
	}

	return strings.Join(out, strings.Repeat("\n", f.options.LinesBetweenQueries+1)), nil
}

// Format formats sql with the given options and writes the result to w.
func Format(w io.Writer, options FormatterOptions, sql string) error {
	return New(options).Format(w, sql)
}

// FormatString formats sql with the default options.
func FormatString(sql string) (string, error) {
	return New(Defaults).FormatString(sql)
}
