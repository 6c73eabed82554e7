package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// SQLFixture is a temporary directory of SQL files for command tests.
type SQLFixture struct {
	Dir string
	t   *testing.T
}

// NewSQLFixture creates an empty fixture directory that is removed when the test
// ends.
func NewSQLFixture(t *testing.T) *SQLFixture {
	t.Helper()
	return &SQLFixture{Dir: t.TempDir(), t: t}
}

// Path returns the absolute path of a fixture file.
func (f *SQLFixture) Path(name string) string {
	return filepath.Join(f.Dir, filepath.FromSlash(name))
}

// WithFile writes content to name (creating parent directories) and returns the
// fixture.
func (f *SQLFixture) WithFile(name, content string) *SQLFixture {
	f.t.Helper()

	path := f.Path(name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(f.t, os.WriteFile(path, []byte(content), consts.ModeFile))
	return f
}

// WithConfig writes cfg as the fixture's sqlbeautify.yaml.
func (f *SQLFixture) WithConfig(cfg *config.Config) *SQLFixture {
	f.t.Helper()

	data, err := yaml.Marshal(cfg)
	require.NoError(f.t, err)
	return f.WithFile(consts.DefaultConfigFile, string(data))
}

// ConfigPath returns the path of the fixture's sqlbeautify.yaml.
func (f *SQLFixture) ConfigPath() string {
	return f.Path(consts.DefaultConfigFile)
}

// Read returns the content of a fixture file.
func (f *SQLFixture) Read(name string) string {
	f.t.Helper()

	content, err := os.ReadFile(f.Path(name))
	require.NoError(f.t, err)
	return string(content)
}
