// Package config provides Viper-based hierarchical configuration
// management: defaults, then an optional YAML file, then AMIFI_*
// environment variables, highest wins.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level   string `mapstructure:"level" yaml:"level"`
		Format  string `mapstructure:"format" yaml:"format"`
		MaskPII bool   `mapstructure:"mask_pii" yaml:"mask_pii"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Host string `mapstructure:"host" yaml:"host"`
		Port int    `mapstructure:"port" yaml:"port"`
	} `mapstructure:"server" yaml:"server"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Goals struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"goals" yaml:"goals"`

	Classifier struct {
		// ModelPath points at a model artifact file. Empty means
		// rule-based classification only.
		ModelPath string `mapstructure:"model_path" yaml:"model_path"`
	} `mapstructure:"classifier" yaml:"classifier"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.txn-pipeline")
	v.AddConfigPath(".txn-pipeline")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("AMIFI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.mask_pii", true)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.path", "data/transactions.db")
	v.SetDefault("goals.file", "goals.yaml")
	v.SetDefault("classifier.model_path", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	return nil
}
