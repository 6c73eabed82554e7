package rules_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/sqlbeautify/pkg/rules"
	"github.com/stretchr/testify/require"
)

func TestEngine_Apply(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		input string
		want  string
	}{
		{
			name:  "default flags are global and multiline",
			rules: []Rule{{Pattern: `^select`, Replacement: "SELECT"}},
			input: "select a\nselect b",
			want:  "SELECT a\nSELECT b",
		},
		{
			name:  "without g only the first match is replaced",
			rules: []Rule{{Pattern: `a`, Replacement: "x", Flags: "m"}},
			input: "a a a",
			want:  "x a a",
		},
		{
			name:  "case insensitive",
			rules: []Rule{{Pattern: `from\s*\n\s+`, Replacement: "from ", Flags: "gi"}},
			input: "FROM\n    t",
			want:  "from t",
		},
		{
			name:  "numbered groups",
			rules: []Rule{{Pattern: `with\s+(\w+)\s*\n\s*as`, Replacement: "with $1 as", Flags: "gi"}},
			input: "with cte\n    as (",
			want:  "with cte as (",
		},
		{
			name:  "named groups and whole match",
			rules: []Rule{{Pattern: `(?<col>\w+) = 1`, Replacement: "[$&] $<col>"}},
			input: "x = 1",
			want:  "[x = 1] x",
		},
		{
			name:  "dollar escapes and unknown groups stay literal",
			rules: []Rule{{Pattern: `(a)`, Replacement: "$$ $2 $1"}},
			input: "a",
			want:  "$ $2 a",
		},
		{
			name:  "two digit group falls back to one digit",
			rules: []Rule{{Pattern: `(a)`, Replacement: "$10"}},
			input: "a",
			want:  "a0",
		},
		{
			name:  "before and after the match",
			rules: []Rule{{Pattern: `b`, Replacement: "<$`|$'>"}},
			input: "abc",
			want:  "a<a|c>c",
		},
		{
			name:  "lookbehind",
			rules: []Rule{{Pattern: `(?<=join )(\w+)`, Replacement: "$1_t"}},
			input: "from a join b",
			want:  "from a join b_t",
		},
		{
			name:  "backreferences",
			rules: []Rule{{Pattern: `\b(\w+) \1\b`, Replacement: "$1", Flags: "gi"}},
			input: "select select a from from t",
			want:  "select a from t",
		},
		{
			name:  "dot matches newlines with s",
			rules: []Rule{{Pattern: `/\*.*\*/\n?`, Flags: "gs"}},
			input: "/* one\ntwo */\nselect 1",
			want:  "select 1",
		},
		{
			name:  "non-ascii text around matches",
			rules: []Rule{{Pattern: `x`, Replacement: "[$`]", Flags: "g"}},
			input: "中x",
			want:  "中[中]",
		},
		{
			name:  "missing replacement deletes",
			rules: []Rule{{Pattern: `\s+$`}},
			input: "select 1   \nfrom t  ",
			want:  "select 1\nfrom t",
		},
		{
			name: "rules run in order",
			rules: []Rule{
				{Pattern: `a`, Replacement: "b"},
				{Pattern: `b`, Replacement: "c"},
			},
			input: "a",
			want:  "c",
		},
		{
			name: "invalid rules are skipped",
			rules: []Rule{
				{Pattern: `(x)y(`, Replacement: "z"},
				{Pattern: `y`, Replacement: "w"},
			},
			input: "xy",
			want:  "xw",
		},
		{
			name: "bad flags and empty patterns are skipped",
			rules: []Rule{
				{Pattern: `x`, Replacement: "1", Flags: "gq"},
				{Pattern: `x`, Replacement: "2", Flags: "gg"},
				{Replacement: "3"},
				{Pattern: `x`, Replacement: "4", Flags: "gu"},
			},
			input: "x",
			want:  "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(tt.rules, slog.New(slog.DiscardHandler))
			require.Equal(t, tt.want, engine.Apply(tt.input))
		})
	}
}

func TestEngine_ApplyTimeout(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	engine := New([]Rule{
		{Pattern: `(a+)+$`, Replacement: "x"},
		{Pattern: `!`, Replacement: "?"},
	}, logger, WithTimeout(time.Millisecond))

	input := strings.Repeat("a", 40) + "!"
	require.Equal(t, strings.Repeat("a", 40)+"?", engine.Apply(input))
	require.Contains(t, buf.String(), "skipping custom rule")
	require.Contains(t, buf.String(), "timeout")
}

func TestNew_LogsSkippedRules(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	engine := New([]Rule{{Pattern: `(`}, {Pattern: `ok`}}, logger)
	require.Equal(t, 1, engine.Len())
	require.Contains(t, buf.String(), "skipping custom rule")
	require.Contains(t, buf.String(), "pattern=(")
}

func TestCheck(t *testing.T) {
	results := Check([]Rule{
		{Pattern: `select\s+`, Replacement: "select "},
		{Pattern: ""},
		{Pattern: `a`, Flags: "x"},
		{Pattern: `[`},
	})

	require.Len(t, results, 4)
	require.NoError(t, results[0].Err)
	require.True(t, errors.Is(results[1].Err, ErrEmptyPattern))
	require.True(t, errors.Is(results[2].Err, ErrInvalidFlag))
	require.ErrorContains(t, results[3].Err, "failed to compile")
}
