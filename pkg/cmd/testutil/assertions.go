package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireFileExists asserts that a file exists and optionally checks its content
func RequireFileExists(t *testing.T, path string, checks ...func(content string)) {
	t.Helper()

	require.FileExists(t, path, "File should exist: %s", path)

	if len(checks) > 0 {
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Failed to read file: %s", path)

		contentStr := string(content)
		for _, check := range checks {
			check(contentStr)
		}
	}
}

// RequireFileContains returns a check function that verifies file contains text
func RequireFileContains(t *testing.T, expected string) func(string) {
	return func(content string) {
		require.Contains(t, content, expected, "File should contain: %s", expected)
	}
}

// RequireFileNotContains returns a check function that verifies file doesn't contain text
func RequireFileNotContains(t *testing.T, unexpected string) func(string) {
	return func(content string) {
		require.NotContains(t, content, unexpected, "File should not contain: %s", unexpected)
	}
}

// RequireFileContent asserts a file holds exactly expected.
func RequireFileContent(t *testing.T, path, expected string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read file: %s", path)
	require.Equal(t, expected, string(content), "Unexpected content in %s", path)
}

// RequireFileMode asserts a file's permission bits.
func RequireFileMode(t *testing.T, path string, mode os.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, mode, info.Mode().Perm(), "Unexpected mode for %s", path)
}
