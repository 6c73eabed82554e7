package cmd

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// stdio returns the streams of the root command, where tests and main set them,
// falling back to the command's own and then the process's.
func stdio(cmd *cli.Command) (io.Reader, io.Writer) {
	var (
		r io.Reader = os.Stdin
		w io.Writer = os.Stdout
	)

	for _, c := range []*cli.Command{cmd, cmd.Root()} {
		if c == nil {
			continue
		}
		if c.Reader != nil {
			r = c.Reader
		}
		if c.Writer != nil {
			w = c.Writer
		}
	}

	return r, w
}
