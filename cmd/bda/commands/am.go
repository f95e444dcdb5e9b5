package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/bdaresume/am"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/version"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Show bda configuration",
	Long: `am - Show bda configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags (--profile, --region)
2. Environment variables (BDA_* prefix, plus the processor's BUCKET_NAME,
   INPUT_PREFIX, OUTPUT_PREFIX, BLUEPRINT_ARN, PROJECT_ARN, PROFILE_ARN)
3. Project config (./am.toml, searching up directories)
4. User config (~/.bda/am.toml)
5. System config (/etc/bda/config.toml)
6. Default values

--config reads defaults plus that one file; environment variables and the
other files are ignored.

Examples:
  bda am show                     # Show current configuration
  bda am show --format json       # Show configuration in JSON format
  bda am get automation.max_wait_seconds
  bda am validate                 # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., storage.input_prefix)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which configuration files are read",
	RunE:  runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	v, err := loadViper(cmd)
	if err != nil {
		return err
	}
	settings := v.AllSettings()

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Printf("# bda configuration (%s)\n%s", version.Get().AppID(), string(data))

	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Printf("# bda configuration (%s)\n%s", version.Get().AppID(), string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	v, err := loadViper(cmd)
	if err != nil {
		return err
	}
	key := args[0]
	if !v.IsSet(key) {
		return errors.Wrapf(errors.ErrNotFound, "configuration key %q", key)
	}
	fmt.Println(v.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fmt.Printf("Reading only %s (--config)\n", path)
		return nil
	}

	fmt.Println("Configuration files (later overrides earlier):")
	for _, path := range am.ConfigPaths() {
		state := "missing"
		if _, err := os.Stat(path); err == nil {
			state = "loaded"
		}
		fmt.Printf("  %-8s %s\n", state, path)
	}
	fmt.Println("Environment variables with the BDA_ prefix override every file.")
	return nil
}
