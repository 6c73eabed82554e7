package dialect

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Tokenize splits sql into tokens. Whitespace is dropped; whether a token
// followed whitespace or a line break is kept on the token. Input that no rule of
// the dialect accepts (an unterminated string, a stray quote) is an error.
func (d *Dialect) Tokenize(sql string) ([]Token, error) {
	lex, err := d.lexer.LexString(d.Name, sql)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to tokenize %s", d.Name)
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to tokenize %s", d.Name)
	}

	tokens := make([]Token, 0, len(raw))
	space, newline := false, false
	for _, t := range raw {
		if t.EOF() {
			break
		}

		kind, ok := d.kinds[t.Type]
		if !ok {
			// whitespace
			space = true
			newline = newline || strings.Contains(t.Value, "\n")
			continue
		}

		value := t.Value
		if kind == KindLineComment {
			value = strings.TrimRight(value, " \t\r")
		}

		tokens = append(tokens, Token{Kind: kind, Value: value, SpaceBefore: space, NewlineBefore: newline})
		space, newline = false, false
	}

	return tokens, nil
}
