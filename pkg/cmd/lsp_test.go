package cmd

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/pseudomuto/sqlbeautify/pkg/cmd/testutil"
	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, msgs ...map[string]any) string {
	t.Helper()

	var sb strings.Builder
	for _, msg := range msgs {
		body, err := json.Marshal(msg)
		require.NoError(t, err)
		sb.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n")
		sb.Write(body)
	}

	return sb.String()
}

func TestLSPCommand(t *testing.T) {
	stdin := frame(t,
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{"processId": 1}},
		map[string]any{"jsonrpc": "2.0", "id": 2, "method": "shutdown"},
		map[string]any{"jsonrpc": "2.0", "method": "exit"},
	)

	out, err := testutil.RunCommand(t, lspCmd(config.Default()), stdin)
	require.NoError(t, err)
	require.Contains(t, out, `"documentFormattingProvider":true`)
	require.Contains(t, out, `"name":"sqlbeautify"`)
	require.Equal(t, 2, strings.Count(out, "Content-Length: "))
}
