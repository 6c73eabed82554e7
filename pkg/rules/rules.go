// Package rules applies user-supplied regular expression substitutions to
// formatted SQL.
//
// A Rule mirrors a JavaScript String.replace call: the pattern is compiled with
// its flags (g, i, m and s are honoured; u, y, d and v are accepted and ignored)
// and the replacement understands $$, $&, $`, $', $1..$99 and $<name>. Rules
// without flags use "gm".
//
// Patterns are compiled in ECMAScript mode, so lookaround, backreferences and
// (?<name>...) groups behave as they do in JavaScript. Each match is bounded by
// a timeout. A rule that fails to compile, or fails or times out while being
// applied, is logged and skipped; the text carries on from before that rule.
package rules

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

const (
	// DefaultFlags are used by rules that do not set any.
	DefaultFlags = "gm"

	// DefaultTimeout bounds a single match of a rule's pattern.
	DefaultTimeout = time.Second
)

var (
	// ErrEmptyPattern is returned for a rule without a pattern.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrInvalidFlag is returned for an unknown or repeated flag.
	ErrInvalidFlag = errors.New("invalid flag")
)

type (
	// Rule is a single pattern/replacement substitution.
	Rule struct {
		Pattern     string `json:"regex"                 yaml:"pattern"`
		Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
		Flags       string `json:"flags,omitempty"       yaml:"flags,omitempty"`
	}

	// Result is the outcome of compiling one rule.
	Result struct {
		Rule Rule
		Err  error
	}

	// Engine applies a list of compiled rules in order.
	Engine struct {
		rules   []*compiled
		logger  *slog.Logger
		timeout time.Duration
	}

	// Option configures an Engine.
	Option func(*Engine)

	compiled struct {
		rule   Rule
		re     *regexp2.Regexp
		global bool
	}
)

// WithTimeout bounds each match; zero or less means DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// compile validates the rule and compiles its pattern.
func (r Rule) compile() (*compiled, error) {
	if r.Pattern == "" {
		return nil, ErrEmptyPattern
	}

	flags := r.Flags
	if flags == "" {
		flags = DefaultFlags
	}

	opts, global, err := parseFlags(flags)
	if err != nil {
		return nil, err
	}

	re, err := regexp2.Compile(r.Pattern, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile %q", r.Pattern)
	}

	return &compiled{rule: r, re: re, global: global}, nil
}

func parseFlags(flags string) (regexp2.RegexOptions, bool, error) {
	var (
		opts   = regexp2.RegexOptions(regexp2.ECMAScript)
		global bool
		seen   = make(map[rune]bool, len(flags))
	)

	for _, f := range flags {
		if seen[f] {
			return 0, false, errors.Wrapf(ErrInvalidFlag, "%q repeated", f)
		}
		seen[f] = true

		switch f {
		case 'g':
			global = true
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u', 'y', 'd', 'v':
		default:
			return 0, false, errors.Wrapf(ErrInvalidFlag, "%q", f)
		}
	}

	return opts, global, nil
}

// Check compiles every rule and reports the result of each, in order.
func Check(rules []Rule) []Result {
	results := make([]Result, len(rules))
	for i, r := range rules {
		_, err := r.compile()
		results[i] = Result{Rule: r, Err: err}
	}

	return results
}

// New compiles rules into an Engine. Rules that fail to compile are logged and
// left out. A nil logger means slog.Default().
func New(rules []Rule, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{logger: logger, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}

	for _, r := range rules {
		c, err := r.compile()
		if err != nil {
			logger.Warn("skipping custom rule", "pattern", r.Pattern, "err", err)
			continue
		}

		c.re.MatchTimeout = e.timeout
		e.rules = append(e.rules, c)
	}

	return e
}

// Len is the number of rules that compiled.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Apply runs each rule over the whole text in order and returns the result.
func (e *Engine) Apply(text string) string {
	for _, c := range e.rules {
		text = e.apply(c, text)
	}

	return text
}

func (e *Engine) apply(c *compiled, text string) (out string) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Warn("skipping custom rule", "pattern", c.rule.Pattern, "err", fmt.Sprint(p))
			out = text
		}
	}()

	out, err := c.replace(text)
	if err != nil {
		e.logger.Warn("skipping custom rule", "pattern", c.rule.Pattern, "err", err)
		return text
	}

	return out
}

func (c *compiled) replace(src string) (string, error) {
	runes := []rune(src)

	m, err := c.re.FindRunesMatch(runes)
	if err != nil || m == nil {
		return src, err
	}

	var b strings.Builder
	last := 0
	for m != nil {
		b.WriteString(string(runes[last:m.Index]))
		c.expand(&b, runes, m)
		last = m.Index + m.Length

		if !c.global {
			break
		}

		if m, err = c.re.FindNextMatch(m); err != nil {
			return src, err
		}
	}
	b.WriteString(string(runes[last:]))

	return b.String(), nil
}

// expand writes the replacement for match m, resolving $ references the way
// JavaScript does. References that resolve to nothing are written literally.
func (c *compiled) expand(b *strings.Builder, src []rune, m *regexp2.Match) {
	tmpl := c.rule.Replacement
	groups := m.GroupCount() - 1
	start, end := m.Index, m.Index+m.Length

	group := func(g *regexp2.Group) string {
		if g == nil || len(g.Captures) == 0 {
			return ""
		}
		return g.String()
	}

	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 == len(tmpl) {
			b.WriteByte(tmpl[i])
			continue
		}

		next := tmpl[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(string(src[start:end]))
			i++
		case next == '`':
			b.WriteString(string(src[:start]))
			i++
		case next == '\'':
			b.WriteString(string(src[end:]))
			i++
		case isDigit(next):
			n, width := groupRef(tmpl[i+1:], groups)
			if width == 0 {
				b.WriteByte('$')
				continue
			}
			b.WriteString(group(m.GroupByNumber(n)))
			i += width
		case next == '<' && c.hasNames():
			gt := strings.IndexByte(tmpl[i+2:], '>')
			if gt < 0 {
				b.WriteByte('$')
				continue
			}
			b.WriteString(group(m.GroupByName(tmpl[i+2 : i+2+gt])))
			i += gt + 2
		default:
			b.WriteByte('$')
		}
	}
}

func (c *compiled) hasNames() bool {
	for _, name := range c.re.GetGroupNames() {
		if _, err := strconv.Atoi(name); err != nil {
			return true
		}
	}

	return false
}

// groupRef parses the group number at the start of s. Two digits win when that
// group exists, then one. A width of 0 means no such group.
func groupRef(s string, groups int) (int, int) {
	if len(s) >= 2 && isDigit(s[1]) {
		if n := int(s[0]-'0')*10 + int(s[1]-'0'); n >= 1 && n <= groups {
			return n, 2
		}
	}

	if n := int(s[0] - '0'); n >= 1 && n <= groups {
		return n, 1
	}

	return 0, 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
