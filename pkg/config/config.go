package config

import (
	_ "embed"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/beautify"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"github.com/pseudomuto/sqlbeautify/pkg/rules"
	"gopkg.in/yaml.v3"
)

//go:embed embed/sqlbeautify.yaml
var defaultConfig []byte

// Config holds the formatting settings for a project.
type Config struct {
	// Dialect names the SQL dialect used to tokenize input
	Dialect string `json:"dialect" yaml:"dialect"`

	// Uppercase prints keywords in upper case instead of keeping their case
	Uppercase bool `json:"uppercase" yaml:"uppercase"`

	// Indent is a tab or a run of spaces
	Indent string `json:"indent" yaml:"indent"`

	// LinesBetweenQueries is the number of blank lines between statements
	LinesBetweenQueries int `json:"linesBetweenQueries" yaml:"lines_between_queries"`

	// CustomRules are applied in order to the formatted text
	CustomRules []rules.Rule `json:"customRules" yaml:"custom_rules"`
}

// Default returns a Config with every setting at its default.
func Default() *Config {
	return &Config{
		Dialect:             consts.DefaultDialect,
		Indent:              consts.DefaultIndent,
		LinesBetweenQueries: consts.DefaultLinesBetweenQueries,
	}
}

// DefaultFile returns the contents written by Initialize.
func DefaultFile() []byte {
	return defaultConfig
}

// LoadConfig parses a configuration from the provided io.Reader. Settings that
// are missing or empty keep their defaults, and an empty document yields the
// default configuration.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	dialect: postgresql
//	uppercase: true
//	custom_rules:
//	  - pattern: '\s+$'
//	`))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(cfg.Dialect)
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Dialect == "" {
		cfg.Dialect = consts.DefaultDialect
	}
	if cfg.Indent == "" {
		cfg.Indent = consts.DefaultIndent
	}
	if cfg.LinesBetweenQueries < 0 {
		return nil, errors.Errorf("lines_between_queries must not be negative, got %d", cfg.LinesBetweenQueries)
	}

	return cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Resolve loads the configuration at path. An empty path looks for the default
// file in dir instead, and falls back to the default configuration when there is
// none. An explicit path that does not exist is an error.
func Resolve(dir, path string) (*Config, error) {
	if path != "" {
		return LoadConfigFile(path)
	}

	path = filepath.Join(dir, consts.DefaultConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadConfigFile(path)
}

// Initialize writes the default configuration file into dir. An existing file is
// left alone unless force is set. It returns the path of the file and whether it
// was written.
func Initialize(dir string, force bool) (string, bool, error) {
	path := filepath.Join(dir, consts.DefaultConfigFile)

	if _, err := os.Stat(path); err == nil && !force {
		return path, false, nil
	} else if err != nil && !os.IsNotExist(err) {
		return path, false, errors.Wrapf(err, "failed to stat %s", path)
	}

	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return path, false, errors.Wrapf(err, "failed to create directory %s", dir)
	}

	if err := os.WriteFile(path, defaultConfig, consts.ModeFile); err != nil {
		return path, false, errors.Wrapf(err, "failed to write file %s", path)
	}

	return path, true, nil
}

// Options converts the configuration into formatting options.
func (c *Config) Options(logger *slog.Logger) beautify.Options {
	return beautify.Options{
		Dialect:             c.Dialect,
		Uppercase:           c.Uppercase,
		Indent:              c.Indent,
		LinesBetweenQueries: c.LinesBetweenQueries,
		CustomRules:         c.CustomRules,
		Logger:              logger,
	}
}

// Beautifier returns a Beautifier for this configuration.
func (c *Config) Beautifier(logger *slog.Logger) *beautify.Beautifier {
	return beautify.New(c.Options(logger))
}
