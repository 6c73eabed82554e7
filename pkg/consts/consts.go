package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the project configuration file looked up in the working directory
	DefaultConfigFile = "sqlbeautify.yaml"

	// DefaultDialect is used when no dialect is configured
	DefaultDialect = "sql"

	// DefaultIndent is the indentation unit used when none is configured
	DefaultIndent = "    "

	// DefaultLinesBetweenQueries is the number of blank lines emitted between statements
	DefaultLinesBetweenQueries = 1

	// SQLExtension is the file extension recognized when formatting directories
	SQLExtension = ".sql"
)

// ConfigEnvVar names the environment variable that points at a configuration file
const ConfigEnvVar = "SQLBEAUTIFY_CONFIG"

// SettingsSection is the key editors nest sqlbeautify settings under
const SettingsSection = "sqlbeautify"
