package dialect

import (
	"regexp"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

const (
	blockComment = `/\*[^*]*\*+([^/*][^*]*\*+)*/`
	number       = `0[xX][0-9a-fA-F]+|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`
	word         = `[\p{L}_][\p{L}\p{N}_$]*`
	operatorChar = `[-+*/%=<>!~^&|@#?:]`
	punct        = `[(),;.\[\]{}]`
)

type builderSpec struct {
	lineComments []string
	strings      []string
	idents       []string
	params       []string
	operators    []string
	keywords     []string
	functions    []string
	clauses      []string
	setOps       []string
	joins        []string
	phrases      []string
}

// Builder assembles a Dialect. Every method adds to what is already
// configured, so a dialect can start from a parent with Extends and add to it.
// Lexical patterns (strings, quoted identifiers, parameters) are tried before
// inherited ones, which lets a dialect shadow a parent's quoting rules.
type Builder struct {
	name    string
	aliases []string
	spec    builderSpec
}

// NewDialect starts a dialect definition.
func NewDialect(name string) *Builder {
	return &Builder{name: strings.ToLower(name)}
}

// Extends copies every setting of parent into the builder.
func (b *Builder) Extends(parent *Dialect) *Builder {
	p := parent.spec
	b.spec = builderSpec{
		lineComments: slices.Clone(p.lineComments),
		strings:      slices.Clone(p.strings),
		idents:       slices.Clone(p.idents),
		params:       slices.Clone(p.params),
		operators:    slices.Clone(p.operators),
		keywords:     slices.Clone(p.keywords),
		functions:    slices.Clone(p.functions),
		clauses:      slices.Clone(p.clauses),
		setOps:       slices.Clone(p.setOps),
		joins:        slices.Clone(p.joins),
		phrases:      slices.Clone(p.phrases),
	}

	return b
}

// Aliases registers additional lookup names.
func (b *Builder) Aliases(names ...string) *Builder {
	b.aliases = append(b.aliases, names...)
	return b
}

// LineComments adds line comment prefixes besides "--".
func (b *Builder) LineComments(prefixes ...string) *Builder {
	b.spec.lineComments = append(b.spec.lineComments, prefixes...)
	return b
}

// Strings adds string literal patterns (regular expressions).
func (b *Builder) Strings(patterns ...string) *Builder {
	b.spec.strings = append(slices.Clone(patterns), b.spec.strings...)
	return b
}

// QuotedIdents adds quoted identifier patterns (regular expressions).
func (b *Builder) QuotedIdents(patterns ...string) *Builder {
	b.spec.idents = append(slices.Clone(patterns), b.spec.idents...)
	return b
}

// Params adds bind parameter patterns (regular expressions).
func (b *Builder) Params(patterns ...string) *Builder {
	b.spec.params = append(slices.Clone(patterns), b.spec.params...)
	return b
}

// Operators adds literal multi-character operators.
func (b *Builder) Operators(ops ...string) *Builder {
	b.spec.operators = append(b.spec.operators, ops...)
	return b
}

// Keywords adds reserved words.
func (b *Builder) Keywords(words ...string) *Builder {
	b.spec.keywords = append(b.spec.keywords, words...)
	return b
}

// Functions adds keywords that are written like function calls.
func (b *Builder) Functions(words ...string) *Builder {
	b.spec.functions = append(b.spec.functions, words...)
	return b
}

// Clauses adds clause keywords. Multi-word clauses are also registered as phrases.
func (b *Builder) Clauses(phrases ...string) *Builder {
	b.spec.clauses = append(b.spec.clauses, phrases...)
	return b
}

// SetOperators adds set operators.
func (b *Builder) SetOperators(phrases ...string) *Builder {
	b.spec.setOps = append(b.spec.setOps, phrases...)
	return b
}

// Joins adds JOIN forms.
func (b *Builder) Joins(phrases ...string) *Builder {
	b.spec.joins = append(b.spec.joins, phrases...)
	return b
}

// Phrases adds multi-word keywords without layout meaning (IS NOT NULL, WITH TIME ZONE).
func (b *Builder) Phrases(phrases ...string) *Builder {
	b.spec.phrases = append(b.spec.phrases, phrases...)
	return b
}

// Build compiles the dialect. It panics when a pattern does not compile, the
// same way lexer.MustSimple does, since dialects are defined at init time.
func (b *Builder) Build() *Dialect {
	d := &Dialect{
		Name:      b.name,
		Aliases:   b.aliases,
		keywords:  toSet(b.spec.keywords),
		functions: toSet(b.spec.functions),
		clauses:   toSet(b.spec.clauses),
		setOps:    toSet(b.spec.setOps),
		joins:     toSet(b.spec.joins),
		phrases:   make(map[string]int),
		spec:      b.spec,
	}

	for _, group := range [][]string{b.spec.clauses, b.spec.setOps, b.spec.joins, b.spec.phrases} {
		for _, phrase := range group {
			phrase = strings.ToLower(phrase)
			n := len(strings.Fields(phrase))
			if n < 2 {
				continue
			}

			d.phrases[phrase] = n
			d.maxPhrase = max(d.maxPhrase, n)
		}
	}

	// Single word clauses, set operators and joins are reserved words too.
	for _, group := range [][]string{b.spec.clauses, b.spec.setOps, b.spec.joins, b.spec.functions} {
		for _, w := range group {
			if !strings.Contains(w, " ") {
				d.keywords[strings.ToLower(w)] = struct{}{}
			}
		}
	}

	d.lexer = lexer.MustSimple(b.rules())
	d.kinds = make(map[lexer.TokenType]Kind)
	for name, typ := range d.lexer.Symbols() {
		if kind, ok := ruleKinds[name]; ok {
			d.kinds[typ] = kind
		}
	}

	return d
}

var ruleKinds = map[string]Kind{
	"LineComment":  KindLineComment,
	"BlockComment": KindBlockComment,
	"String":       KindString,
	"QuotedIdent":  KindQuotedIdent,
	"Number":       KindNumber,
	"Param":        KindParam,
	"Word":         KindWord,
	"Operator":     KindOperator,
	"Punct":        KindPunct,
}

// rules orders the lexer rules so that the first matching alternative is the
// right one: comments before operators, strings and quoted identifiers before
// words, parameters before bare operator characters.
func (b *Builder) rules() []lexer.SimpleRule {
	lineComments := []string{`--[^\n]*`}
	for _, prefix := range b.spec.lineComments {
		lineComments = append(lineComments, regexp.QuoteMeta(prefix)+`[^\n]*`)
	}

	rules := []lexer.SimpleRule{
		{Name: "LineComment", Pattern: strings.Join(lineComments, "|")},
		{Name: "BlockComment", Pattern: blockComment},
		{Name: "Whitespace", Pattern: `\s+`},
	}

	if len(b.spec.strings) > 0 {
		rules = append(rules, lexer.SimpleRule{Name: "String", Pattern: strings.Join(b.spec.strings, "|")})
	}

	if len(b.spec.idents) > 0 {
		rules = append(rules, lexer.SimpleRule{Name: "QuotedIdent", Pattern: strings.Join(b.spec.idents, "|")})
	}

	rules = append(rules, lexer.SimpleRule{Name: "Number", Pattern: number})

	if len(b.spec.params) > 0 {
		rules = append(rules, lexer.SimpleRule{Name: "Param", Pattern: strings.Join(b.spec.params, "|")})
	}

	// Longest operators first so that "->>" is not lexed as "->" and ">".
	ops := slices.Clone(b.spec.operators)
	slices.SortStableFunc(ops, func(a, b string) int { return len(b) - len(a) })
	quoted := make([]string, 0, len(ops)+1)
	for _, op := range ops {
		quoted = append(quoted, regexp.QuoteMeta(op))
	}
	quoted = append(quoted, operatorChar)

	return append(rules,
		lexer.SimpleRule{Name: "Word", Pattern: word},
		lexer.SimpleRule{Name: "Operator", Pattern: strings.Join(quoted, "|")},
		lexer.SimpleRule{Name: "Punct", Pattern: punct},
	)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}

	return set
}
