package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Level      *slog.LevelVar
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the sqlbeautify CLI application with the fx lifecycle. The
// application starts once fx has started and shuts fx down with its exit code
// when the command returns.
//
// Global Flags:
//   - --config, -c: Configuration file (defaults to ./sqlbeautify.yaml when present)
//   - --verbose, -v: Log at debug level
//
// Example usage:
//
//	sqlbeautify fmt -w queries/
//	sqlbeautify --config team.yaml fmt --check queries/
//	sqlbeautify lsp
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := newApp(p)

	p.Lifecycle.Append(fx.StartHook(func() {
		// lsp and fmt --watch run until interrupted, so the command cannot
		// block the start hook.
		go func() {
			if err := app.Run(p.Ctx, p.Args); err != nil {
				slog.Error("Error running command", "err", err)
				_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				return
			}

			_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
		}()
	}))
}

func newApp(p Params) *cli.Command {
	// -v is --verbose here.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &cli.Command{
		Name:  "sqlbeautify",
		Usage: "Re-indent SQL into a compact house style",
		Description: `sqlbeautify pretty-prints SQL and then rewrites its indentation: one-line
clause headers, aligned select lists, stacked CASE expressions, anchored joins
and collapsed GROUP BY lists. Custom regex rules run last.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "the sqlbeautify config file",
				Sources:     cli.EnvVars(consts.ConfigEnvVar),
				DefaultText: consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log at debug level",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") && p.Level != nil {
				p.Level.Set(slog.LevelDebug)
			}

			path := cmd.String("config")
			if path == "" {
				return ctx, nil
			}

			loaded, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, err
			}

			// Commands hold the same *Config, so replace its contents.
			*p.Config = *loaded
			slog.Debug("Loaded config", "path", path)
			return ctx, nil
		},
		Commands: p.Commands,
	}
}
