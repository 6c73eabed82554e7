package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/beautify"
	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type (
	fmtOptions struct {
		write  bool
		check  bool
		strict bool
	}

	// formatResult is the outcome of formatting one file.
	formatResult struct {
		path      string
		original  string
		formatted string
	}
)

func (r formatResult) changed() bool {
	return r.original != r.formatted
}

// fmtCmd creates a CLI command for formatting SQL files. Like gofmt, it formats
// stdin when no path (or "-") is given, single files, and directory trees of
// .sql files.
//
// Output modes:
//   - Stdout mode (default): formatted SQL is written to standard output
//   - Write mode (-w): files are rewritten in place when their content changes
//   - Check mode (--check): names of unformatted files are listed and the
//     command fails if there are any
//
// With --watch (requires -w) the command keeps running and re-formats files as
// they are saved.
//
// Input the baseline printer rejects is left untouched unless --strict is set,
// in which case the command fails.
//
// Examples:
//
//	sqlbeautify fmt report.sql
//	sqlbeautify fmt -w queries/
//	cat report.sql | sqlbeautify fmt --uppercase
//	sqlbeautify fmt --check queries/
func fmtCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "List files whose formatting differs and fail if there are any",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and format files when they change (requires -w)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on SQL the printer cannot format instead of leaving it as is",
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "SQL dialect (overrides the config file)",
			},
			&cli.BoolFlag{
				Name:  "uppercase",
				Usage: "Upper-case keywords (overrides the config file)",
			},
			&cli.StringFlag{
				Name:  "indent",
				Usage: `Indentation: a number of spaces or "tab" (overrides the config file)`,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := fmtOptions{
				write:  cmd.Bool("write"),
				check:  cmd.Bool("check"),
				strict: cmd.Bool("strict"),
			}

			if opts.write && opts.check {
				return errors.New("-w and --check cannot be combined")
			}
			if cmd.Bool("watch") && !opts.write {
				return errors.New("--watch requires -w")
			}

			c, err := overrideConfig(cfg, cmd)
			if err != nil {
				return err
			}
			b := c.Beautifier(slog.Default())

			r, w := stdio(cmd)
			paths := cmd.Args().Slice()
			if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
				if opts.write || cmd.Bool("watch") {
					return errors.New("cannot write back when reading stdin")
				}
				return formatStdin(b, opts, r, w)
			}

			files, err := collectFiles(paths)
			if err != nil {
				return err
			}

			if err := formatFiles(ctx, b, opts, files, w); err != nil {
				return err
			}

			if cmd.Bool("watch") {
				return watch(ctx, b, paths)
			}

			return nil
		},
	}
}

// overrideConfig applies the command line overrides to a copy of cfg.
func overrideConfig(cfg *config.Config, cmd *cli.Command) (*config.Config, error) {
	c := *config.Default()
	if cfg != nil {
		c = *cfg
	}

	if cmd.IsSet("dialect") {
		c.Dialect = cmd.String("dialect")
	}
	if cmd.IsSet("uppercase") {
		c.Uppercase = cmd.Bool("uppercase")
	}
	if cmd.IsSet("indent") {
		indent, err := parseIndent(cmd.String("indent"))
		if err != nil {
			return nil, err
		}
		c.Indent = indent
	}

	return &c, nil
}

func parseIndent(s string) (string, error) {
	if s == "tab" || s == "\t" {
		return "\t", nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return "", errors.Errorf(`invalid indent %q: expected a positive number or "tab"`, s)
	}

	return strings.Repeat(" ", n), nil
}

func formatStdin(b *beautify.Beautifier, opts fmtOptions, r io.Reader, w io.Writer) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read stdin")
	}

	res, err := formatText(b, opts, "<stdin>", string(content))
	if err != nil {
		return err
	}

	if opts.check {
		if res.changed() {
			return errors.New("stdin is not formatted")
		}
		return nil
	}

	_, err = io.WriteString(w, res.formatted)
	return errors.Wrap(err, "failed to write formatted content to output")
}

// collectFiles expands paths into the SQL files to format. Directories are
// walked recursively in lexical order.
func collectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to access path: %s", path)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var found int
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && isSQLFile(p) {
				files = append(files, p)
				found++
			}

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk directory: %s", path)
		}

		if found == 0 {
			return nil, errors.Errorf("no SQL files found in directory: %s", path)
		}
	}

	return files, nil
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), consts.SQLExtension)
}

// formatFiles formats files concurrently and reports the results in the order
// the files were given.
func formatFiles(ctx context.Context, b *beautify.Beautifier, opts fmtOptions, files []string, w io.Writer) error {
	results := make([]formatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "failed to read file: %s", path)
			}

			res, err := formatText(b, opts, path, string(content))
			if err != nil {
				return err
			}

			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var unformatted int
	for _, res := range results {
		switch {
		case opts.check:
			if res.changed() {
				unformatted++
				fmt.Fprintln(w, res.path)
			}
		case opts.write:
			if err := writeResult(res); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(w, res.formatted); err != nil {
				return errors.Wrap(err, "failed to write formatted content to output")
			}
		}
	}

	if unformatted > 0 {
		return errors.Errorf("%d of %d file(s) are not formatted", unformatted, len(results))
	}

	return nil
}

func formatText(b *beautify.Beautifier, opts fmtOptions, path, content string) (formatResult, error) {
	res := formatResult{path: path, original: content}

	if !opts.strict {
		res.formatted = b.Format(content)
		return res, nil
	}

	formatted, err := b.TryFormat(content)
	if err != nil {
		return res, errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}

	res.formatted = formatted
	return res, nil
}

// writeResult writes a changed file back, keeping its permissions.
func writeResult(res formatResult) error {
	if !res.changed() {
		return nil
	}

	mode := consts.ModeFile
	if info, err := os.Stat(res.path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(res.path, []byte(res.formatted), mode); err != nil {
		return errors.Wrapf(err, "failed to write formatted content to file: %s", res.path)
	}

	slog.Debug("Formatted file", "path", res.path)
	return nil
}
