package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/urfave/cli/v3"
)

// initCmd writes a commented default sqlbeautify.yaml into the given directory
// (the current one by default). An existing file is kept unless --force is set.
//
// Examples:
//
//	sqlbeautify init
//	sqlbeautify init --force queries/
func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default sqlbeautify.yaml",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("at most one directory argument is allowed")
			}

			dir := "."
			if cmd.Args().Len() == 1 {
				dir = cmd.Args().First()
			}

			_, w := stdio(cmd)
			path, written, err := config.Initialize(dir, cmd.Bool("force"))
			if err != nil {
				return err
			}

			if !written {
				fmt.Fprintf(w, "%s already exists (use --force to overwrite)\n", path)
				return nil
			}

			fmt.Fprintf(w, "Created %s\n", path)
			return nil
		},
	}
}
