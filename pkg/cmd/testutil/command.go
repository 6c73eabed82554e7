package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command as the root of a test app, feeding it stdin and
// returning everything it wrote to stdout.
func RunCommand(t *testing.T, command *cli.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	return RunCommandWithContext(context.Background(), t, command, stdin, args...)
}

// RunCommandWithContext executes a command with a custom context
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:     "test",
		Flags:    command.Flags,
		Action:   command.Action,
		Commands: command.Commands,
		Reader:   strings.NewReader(stdin),
		Writer:   &buf,
	}

	err := app.Run(ctx, append([]string{"test"}, args...))
	return buf.String(), err
}
