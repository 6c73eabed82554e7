package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/rules"
	"github.com/urfave/cli/v3"
)

func rulesCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "Inspect the custom rules in the config file",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Compile every custom rule and report the invalid ones",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, w := stdio(cmd)
					return checkRules(w, cfg.CustomRules)
				},
			},
		},
	}
}

// checkRules prints a table of rules and their compile status. It fails when
// any rule would be skipped while formatting.
func checkRules(w io.Writer, rs []rules.Rule) error {
	if len(rs) == 0 {
		fmt.Fprintln(w, "No custom rules configured")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Pattern", "Replacement", "Flags", "Status"})

	var invalid int
	for i, res := range rules.Check(rs) {
		flags := res.Rule.Flags
		if flags == "" {
			flags = rules.DefaultFlags
		}

		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
			invalid++
		}

		t.AppendRow(table.Row{i + 1, res.Rule.Pattern, res.Rule.Replacement, flags, status})
	}

	t.Render()

	if invalid > 0 {
		return errors.Errorf("%d of %d custom rule(s) are invalid", invalid, len(rs))
	}

	return nil
}
