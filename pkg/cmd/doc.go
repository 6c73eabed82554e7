// Package cmd provides CLI commands for the sqlbeautify tool.
//
// Each command is a function returning a *cli.Command (urfave/cli/v3) and is
// registered with the application through the fx Module. Commands read the
// shared *config.Config at run time, after the root command has applied
// --config.
//
// # Available Commands
//
//   - fmt: Format stdin, files or directory trees of .sql files
//   - lsp: Run the language server on stdio for editor integration
//   - init: Write a default sqlbeautify.yaml
//   - rules check: Compile the configured custom rules and report failures
//
// # Global Options
//
//   - --config, -c: Configuration file (also SQLBEAUTIFY_CONFIG)
//   - --verbose, -v: Log at debug level
//   - --version: Display version information
//
// # Example Usage
//
//	sqlbeautify fmt report.sql                 # Print formatted SQL
//	sqlbeautify fmt -w queries/                # Format a directory in place
//	sqlbeautify fmt --check queries/           # Fail if anything is unformatted
//	sqlbeautify fmt -w --watch queries/        # Keep formatting on save
//	sqlbeautify rules check                    # Validate custom rules
package cmd
