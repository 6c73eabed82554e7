package beautify_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlbeautify/pkg/beautify"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestGoldenFiles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.in.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		// "example.in.sql" -> "example.sql"
		outputName := strings.TrimSuffix(filepath.Base(inputFile), ".in.sql") + ".sql"

		t.Run(outputName, func(t *testing.T) {
			input, err := os.ReadFile(inputFile)
			require.NoError(t, err)

			result := FormatLogic(string(input), Options{Logger: quiet()})
			golden.Assert(t, result, outputName)
		})
	}
}
