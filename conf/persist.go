package conf

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/beamline/tagstore/errors"
)

// Save writes the configuration to the user config file as TOML,
// keeping one backup of the previous file.
func Save(config *Config) error {
	path := ConfigFilePath()
	if path == "" {
		return errors.New("cannot determine config file path")
	}
	return SaveTo(config, path)
}

// SaveTo writes the configuration to an explicit path as TOML.
func SaveTo(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := backupExisting(path); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// backupExisting copies the current config to <path>.back before overwriting
func backupExisting(path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(path+".back", content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config backup")
	}
	return nil
}
