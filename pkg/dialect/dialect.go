// Package dialect describes the lexical surface of the SQL dialects understood
// by the baseline printer.
//
// A Dialect knows how to split SQL text into tokens (quoting rules, comment
// styles, parameter placeholders and operators) and which words carry layout
// meaning: clause keywords that open a new section, set operators, JOIN forms
// and reserved words that are subject to keyword casing. It does not know
// anything about SQL grammar beyond that.
//
// Dialects are registered in a process-wide registry by name and alias:
//
//	d, err := dialect.Lookup("postgres")
//	if err != nil {
//		return err
//	}
//
//	tokens, err := d.Tokenize("select a::int from t")
package dialect

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a lexed token.
type Kind int

const (
	KindWord Kind = iota + 1
	KindQuotedIdent
	KindString
	KindNumber
	KindParam
	KindOperator
	KindPunct
	KindLineComment
	KindBlockComment
)

// String returns a readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindQuotedIdent:
		return "quoted identifier"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindParam:
		return "parameter"
	case KindOperator:
		return "operator"
	case KindPunct:
		return "punctuation"
	case KindLineComment:
		return "line comment"
	case KindBlockComment:
		return "block comment"
	default:
		return "unknown"
	}
}

// Token is a single lexeme with whitespace removed.
type Token struct {
	Kind  Kind
	Value string

	// SpaceBefore is true when the token was preceded by whitespace.
	SpaceBefore bool

	// NewlineBefore is true when the whitespace preceding the token contained a
	// line break. Comments use it to keep their own line.
	NewlineBefore bool
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == KindLineComment || t.Kind == KindBlockComment
}

// Dialect is a SQL dialect definition. Use NewDialect to build one.
type Dialect struct {
	Name    string
	Aliases []string

	lexer *lexer.StatefulDefinition
	kinds map[lexer.TokenType]Kind

	keywords  map[string]struct{}
	functions map[string]struct{}
	clauses   map[string]struct{}
	setOps    map[string]struct{}
	joins     map[string]struct{}

	// phrases maps multi-word keywords (space separated, lower case) to their
	// word count. maxPhrase is the longest entry.
	phrases   map[string]int
	maxPhrase int

	spec builderSpec
}

// IsKeyword reports whether word (or a merged phrase) is a reserved word that
// is subject to keyword casing.
func (d *Dialect) IsKeyword(word string) bool {
	w := strings.ToLower(word)
	if _, ok := d.keywords[w]; ok {
		return true
	}

	_, ok := d.phrases[w]
	return ok
}

// IsFunctionKeyword reports whether a keyword is written like a function call,
// with no space before its opening parenthesis (CAST(x AS int)).
func (d *Dialect) IsFunctionKeyword(word string) bool {
	_, ok := d.functions[strings.ToLower(word)]
	return ok
}

// IsClause reports whether phrase opens a top-level query section.
func (d *Dialect) IsClause(phrase string) bool {
	_, ok := d.clauses[strings.ToLower(phrase)]
	return ok
}

// IsSetOperator reports whether phrase combines two queries (UNION ALL, EXCEPT, ...).
func (d *Dialect) IsSetOperator(phrase string) bool {
	_, ok := d.setOps[strings.ToLower(phrase)]
	return ok
}

// IsJoin reports whether phrase is one of the JOIN forms of the dialect.
func (d *Dialect) IsJoin(phrase string) bool {
	_, ok := d.joins[strings.ToLower(phrase)]
	return ok
}

// PhraseLength returns how many of the leading words form a known multi-word
// keyword, or 0 when they do not. Longer phrases win.
func (d *Dialect) PhraseLength(words []string) int {
	n := min(len(words), d.maxPhrase)
	for ; n > 1; n-- {
		phrase := strings.ToLower(strings.Join(words[:n], " "))
		if _, ok := d.phrases[phrase]; ok {
			return n
		}
	}

	return 0
}
