package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beamline/tagstore/conf"
)

// ConfCmd represents the conf (configuration) command
var ConfCmd = &cobra.Command{
	Use:   "conf",
	Short: "Manage tagstore configuration",
	Long: `conf — Manage tagstore configuration

Configuration sources (in order of precedence):
1. Environment variables (TAGSTORE_* prefix)
2. User config (~/.tagstore/config.toml, or TAGSTORE_CONFIG)
3. Default values

Examples:
  tagstore conf show                    # Show current configuration
  tagstore conf show --format json      # Show configuration in JSON format
  tagstore conf init                    # Write current configuration to disk`,
}

var confShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfShow,
}

var confInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write current configuration to the user config file",
	RunE:  runConfInit,
}

var confFormatFlag string

func init() {
	confShowCmd.Flags().StringVar(&confFormatFlag, "format", "toml", "Output format: toml, json, yaml")

	ConfCmd.AddCommand(confShowCmd)
	ConfCmd.AddCommand(confInitCmd)
}

func runConfShow(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch confFormatFlag {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# tagstore configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# tagstore configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", confFormatFlag)
	}

	return nil
}

func runConfInit(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := conf.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Wrote configuration to %s\n", conf.ConfigFilePath())
	return nil
}
