// Package config loads pyimports settings from defaults, a config file,
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errmsg "github.com/siyuan-infoblox/pyimports/pkg/errors"
	"github.com/siyuan-infoblox/pyimports/pkg/imports"
)

const (
	configName = ".pyimports"
	configType = "yaml"
	envPrefix  = "PYIMPORTS"
)

// Setting keys, shared with the flag names of the CLI.
const (
	KeyMaxLineLength = "max_line_length"
	KeyDetectStdlib  = "detect_stdlib"
	KeyDebug         = "debug"
)

// Config holds the tool settings.
type Config struct {
	MaxLineLength int  `mapstructure:"max_line_length"`
	DetectStdlib  bool `mapstructure:"detect_stdlib"`
	Debug         bool `mapstructure:"debug"`
}

// Load resolves settings with precedence defaults < file < env < flags.
// If configPath is empty, .pyimports.yaml is searched in CWD and $HOME;
// a missing file is not an error. Flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyMaxLineLength, imports.DefaultMaxLineLength)
	v.SetDefault(KeyDetectStdlib, false)
	v.SetDefault(KeyDebug, false)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToLoadConfig, err)
		}
	}

	if flags != nil {
		for _, key := range []string{KeyMaxLineLength, KeyDetectStdlib, KeyDebug} {
			if f := flags.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToLoadConfig, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToUnmarshalConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.MaxLineLength <= 0 {
		return fmt.Errorf(errmsg.ErrMsgInvalidMaxLineLength, c.MaxLineLength)
	}
	return nil
}

// flagName maps a setting key to its command-line flag name.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
