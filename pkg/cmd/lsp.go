package cmd

import (
	"context"
	"log/slog"

	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/lsp"
	"github.com/urfave/cli/v3"
)

// lspCmd starts the language server on stdio. Editors send formatting and
// range formatting requests; stdout carries JSON-RPC so logs go to stderr.
func lspCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "lsp",
		Usage: "Start the language server (stdio)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, w := stdio(cmd)
			return lsp.NewServer(r, w, cfg, slog.Default()).Run()
		},
	}
}
