package format

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/dialect"
)

// word is a token after multi-word keywords have been merged.
type word struct {
	text    string
	lower   string
	kind    dialect.Kind
	keyword bool

	spaceBefore   bool
	newlineBefore bool
}

func (w *word) is(text string) bool {
	return w != nil && (w.kind == dialect.KindPunct || w.kind == dialect.KindOperator) && w.text == text
}

func (w *word) isComment() bool {
	return w.kind == dialect.KindLineComment || w.kind == dialect.KindBlockComment
}

// node is either a word or a parenthesized group of nodes.
type node struct {
	word *word

	open, close *word
	children    []*node
}

func (n *node) isGroup() bool {
	return n.open != nil
}

// hasCaseOrComment reports whether a group contains a CASE expression or a
// comment at any depth. Such groups never stay on one line.
func (n *node) hasCaseOrComment() bool {
	for _, c := range n.children {
		if c.isGroup() {
			if c.hasCaseOrComment() {
				return true
			}
			continue
		}

		if c.word.isComment() || (c.word.kind == dialect.KindWord && c.word.lower == "case") {
			return true
		}
	}

	return false
}

type statement struct {
	nodes      []*node
	terminated bool
}

// parseStatements splits words on top-level semicolons and nests parenthesized
// groups. Empty statements are dropped.
func parseStatements(d *dialect.Dialect, tokens []dialect.Token) ([]*statement, error) {
	var (
		stmts []*statement
		opens []*word
		stack = [][]*node{nil}
	)

	for _, w := range mergeWords(d, tokens) {
		top := len(stack) - 1

		switch {
		case w.is("("):
			opens = append(opens, w)
			stack = append(stack, nil)
		case w.is(")"):
			if len(opens) == 0 {
				return nil, errors.Wrap(ErrUnbalancedParens, "unexpected )")
			}

			g := &node{open: opens[len(opens)-1], close: w, children: stack[top]}
			opens = opens[:len(opens)-1]
			stack = stack[:top]
			stack[top-1] = append(stack[top-1], g)
		case w.is(";") && len(opens) == 0:
			if len(stack[0]) > 0 {
				stmts = append(stmts, &statement{nodes: stack[0], terminated: true})
			}
			stack[0] = nil
		default:
			stack[top] = append(stack[top], &node{word: w})
		}
	}

	if len(opens) > 0 {
		return nil, errors.Wrapf(ErrUnbalancedParens, "%d unclosed (", len(opens))
	}

	if len(stack[0]) > 0 {
		stmts = append(stmts, &statement{nodes: stack[0]})
	}

	return stmts, nil
}

// mergeWords converts tokens into words, joining runs of plain words that form
// a multi-word keyword of the dialect ("group by", "left outer join").
func mergeWords(d *dialect.Dialect, tokens []dialect.Token) []*word {
	words := make([]*word, 0, len(tokens))
	afterDot := false

	for i := 0; i < len(tokens); {
		t := tokens[i]

		if t.Kind == dialect.KindWord && !afterDot {
			run := make([]string, 0, 8)
			for j := i; j < len(tokens) && j < i+8 && tokens[j].Kind == dialect.KindWord; j++ {
				run = append(run, tokens[j].Value)
			}

			if n := d.PhraseLength(run); n > 1 {
				text := strings.Join(run[:n], " ")
				words = append(words, &word{
					text:          text,
					lower:         strings.ToLower(text),
					kind:          dialect.KindWord,
					keyword:       true,
					spaceBefore:   t.SpaceBefore,
					newlineBefore: t.NewlineBefore,
				})
				i += n
				continue
			}
		}

		words = append(words, &word{
			text:          t.Value,
			lower:         strings.ToLower(t.Value),
			kind:          t.Kind,
			keyword:       t.Kind == dialect.KindWord && !afterDot && d.IsKeyword(t.Value),
			spaceBefore:   t.SpaceBefore,
			newlineBefore: t.NewlineBefore,
		})

		// a qualified name part is never a keyword: t.key, s.order
		afterDot = t.Kind == dialect.KindPunct && t.Value == "."
		i++
	}

	return words
}
