package config_test

import (
	_ "embed"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"github.com/pseudomuto/sqlbeautify/pkg/rules"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/sqlbeautify.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("defaults", func(t *testing.T) {
		for _, input := range []string{"", "other_key: value", "dialect: ''\nindent: ''"} {
			config, err := LoadConfig(strings.NewReader(input))
			require.NoError(t, err)
			require.Equal(t, Default(), config)
		}
	})

	t.Run("embedded default file", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(string(DefaultFile())))
		require.NoError(t, err)
		require.Equal(t, consts.DefaultDialect, config.Dialect)
		require.Equal(t, consts.DefaultIndent, config.Indent)
		require.Equal(t, consts.DefaultLinesBetweenQueries, config.LinesBetweenQueries)
		require.Empty(t, config.CustomRules)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal config")

		config, err = LoadConfig(strings.NewReader("lines_between_queries: -1"))
		require.Error(t, err)
		require.Nil(t, config)
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfigFile("nonexistent.yaml")
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to open file")
	})
}

func TestResolve(t *testing.T) {
	t.Run("missing default file", func(t *testing.T) {
		config, err := Resolve(t.TempDir(), "")
		require.NoError(t, err)
		require.Equal(t, Default(), config)
	})

	t.Run("default file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, consts.DefaultConfigFile)
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		config, err := Resolve(dir, "")
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Resolve(t.TempDir(), "missing.yaml")
		require.ErrorContains(t, err, "failed to open file")
	})
}

func TestInitialize(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")

	path, written, err := Initialize(dir, false)
	require.NoError(t, err)
	require.True(t, written)
	require.Equal(t, filepath.Join(dir, consts.DefaultConfigFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultFile(), data)

	require.NoError(t, os.WriteFile(path, []byte("dialect: mysql\n"), consts.ModeFile))

	_, written, err = Initialize(dir, false)
	require.NoError(t, err)
	require.False(t, written)

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "mysql", config.Dialect)

	_, written, err = Initialize(dir, true)
	require.NoError(t, err)
	require.True(t, written)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultFile(), data)
}

func TestConfig_Beautifier(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := config.Options(logger)
	require.Equal(t, "postgresql", opts.Dialect)
	require.True(t, opts.Uppercase)
	require.Equal(t, "\t", opts.Indent)
	require.Equal(t, 2, opts.LinesBetweenQueries)
	require.Same(t, logger, opts.Logger)

	out := config.Beautifier(logger).Format("select a as b from t where x = 1 and y = 2")
	require.Equal(t, "SELECT  a AS b\nFROM t\nWHERE x = 1\n\tAND y = 2", out)
}

// validateTestConfig validates that a config contains the expected test data
func validateTestConfig(t *testing.T, config *Config) {
	t.Helper()
	require.NotNil(t, config)
	require.Equal(t, "postgresql", config.Dialect)
	require.True(t, config.Uppercase)
	require.Equal(t, "\t", config.Indent)
	require.Equal(t, 2, config.LinesBetweenQueries)
	require.Equal(t, []rules.Rule{
		{Pattern: `\s+$`},
		{Pattern: `^(\s*)AS\b`, Replacement: "${1}as", Flags: "gmi"},
	}, config.CustomRules)
}
