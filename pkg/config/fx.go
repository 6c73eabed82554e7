package config

import (
	"os"

	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads the file named by SQLBEAUTIFY_CONFIG, or sqlbeautify.yaml from the
	// working directory. Without either the defaults are used, so commands like
	// init and help work anywhere. The --config flag replaces the contents
	// before any command runs.
	func() (*Config, error) {
		return Resolve(".", os.Getenv(consts.ConfigEnvVar))
	},
))
