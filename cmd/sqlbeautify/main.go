package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pseudomuto/sqlbeautify/pkg/cmd"
	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fx.New(
		config.Module,
		cmd.Module,
		fx.NopLogger,
		fx.Provide(
			func() context.Context { return ctx },
			func() []string { return os.Args },
		),
		fx.Supply(
			level,
			&cmd.Version{
				Version:   version,
				Commit:    commit,
				Timestamp: date,
			},
		),
	).Run()
}
