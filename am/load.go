package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/bdaresume/errors"
)

// Load reads configuration from defaults, config files and the environment
func Load() (*Config, error) {
	return LoadWithViper(NewViper())
}

// NewViper returns a Viper instance with defaults, env bindings and merged config files
func NewViper() *viper.Viper {
	v := newEnvViper()
	mergeConfigFiles(v)
	return v
}

// newEnvViper reads defaults and the environment only
func newEnvViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("BDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	BindEnvVars(v)
	SetDefaults(v)
	return v
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific TOML file on top of defaults
func LoadFromFile(configPath string) (*Config, error) {
	v, err := NewViperFromFile(configPath)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViperFromFile returns a Viper instance reading only configPath over the defaults
func NewViperFromFile(configPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return v, nil
}

// findProjectConfig walks up from the working directory looking for am.toml
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		amPath := filepath.Join(dir, "am.toml")
		if _, err := os.Stat(amPath); err == nil {
			return amPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// ConfigPaths lists the candidate config files, lowest precedence first.
// The project entry is omitted when no am.toml is found above the working directory.
func ConfigPaths() []string {
	configPaths := []string{"/etc/bda/config.toml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(homeDir, ".bda", "am.toml"))
	}
	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}
	return configPaths
}

// mergeConfigFiles merges configuration files in precedence order.
// Precedence (lowest to highest): system < user < project < env vars
func mergeConfigFiles(v *viper.Viper) {
	for _, configPath := range ConfigPaths() {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}
		if err := mergeFile(v, configPath); err != nil {
			// A broken optional file must not stop the Lambda from starting
			continue
		}
	}
}

func mergeFile(v *viper.Viper, configPath string) error {
	tempViper := viper.New()
	tempViper.SetConfigFile(configPath)
	tempViper.SetConfigType("toml")

	if err := tempViper.ReadInConfig(); err != nil {
		return err
	}
	return v.MergeConfigMap(tempViper.AllSettings())
}
