// Package conf loads and persists tagstore configuration.
//
// Configuration is layered: built-in defaults, then an optional TOML
// config file, then TAGSTORE_* environment variables. The database
// path override (TAGSTORE_DATABASE_PATH) is the single knob the
// tagging core documents for pointing the registry at another store.
package conf

// Config represents the tagstore configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database" yaml:"database"`
	Query    QueryConfig    `mapstructure:"query" toml:"query" json:"query" yaml:"query"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// QueryConfig configures dataset query behavior
type QueryConfig struct {
	// DefaultLimit is the page size used when a query supplies no limit.
	// A limit of zero never means unbounded.
	DefaultLimit int `mapstructure:"default_limit" toml:"default_limit" json:"default_limit" yaml:"default_limit"`
	// MaxLimit caps the page size a caller may request
	MaxLimit int `mapstructure:"max_limit" toml:"max_limit" json:"max_limit" yaml:"max_limit"`
}

// LogConfig configures logger output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// Default values applied when the config file and environment are silent
const (
	DefaultDatabasePath = "tagstore.db"
	DefaultQueryLimit   = 100
	DefaultMaxLimit     = 1000

	// DefaultFilePermissions for config files written by Save
	DefaultFilePermissions = 0o644
	// DefaultDirPermissions for the config directory
	DefaultDirPermissions = 0o755
)
