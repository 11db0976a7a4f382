package conf

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", DefaultDatabasePath)

	// Query defaults
	v.SetDefault("query.default_limit", DefaultQueryLimit)
	v.SetDefault("query.max_limit", DefaultMaxLimit)

	// Log defaults
	v.SetDefault("log.json", false)
}

// Normalize replaces out-of-range values with defaults. Keeps a loaded
// config usable even when the file carries zero or negative limits.
func (c *Config) Normalize() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Query.DefaultLimit <= 0 {
		c.Query.DefaultLimit = DefaultQueryLimit
	}
	if c.Query.MaxLimit <= 0 {
		c.Query.MaxLimit = DefaultMaxLimit
	}
	if c.Query.DefaultLimit > c.Query.MaxLimit {
		c.Query.DefaultLimit = c.Query.MaxLimit
	}
}
