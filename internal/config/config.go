// Package config loads tagcmp CLI settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TAGCMP_ADDRESS_MARKUP.
const EnvPrefix = "TAGCMP"

// Settings holds the CLI configuration.
type Settings struct {
	Debug       bool   `mapstructure:"debug"`
	ContentRoot string `mapstructure:"contentroot"`
	Listen      string `mapstructure:"listen"`

	Address struct {
		Markup string `mapstructure:"markup"`
		Order  int    `mapstructure:"order"`
		MapURL string `mapstructure:"mapurl"`
	} `mapstructure:"address"`

	Markup struct {
		Markup string `mapstructure:"markup"`
		Order  int    `mapstructure:"order"`
	} `mapstructure:"markup"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("contentroot", ".")
	v.SetDefault("listen", ":8080")
	v.SetDefault("address.markup", "")
	v.SetDefault("address.order", 1)
	v.SetDefault("address.mapurl", "")
	v.SetDefault("markup.markup", "")
	v.SetDefault("markup.order", 5)
}

// Load reads settings into a fresh Settings.
//
// When configFile is empty, tagcmp.yaml is looked up in the working
// directory and a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("tagcmp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}
	return settings, nil
}

// Validate checks settings that would otherwise fail at first render.
func Validate(s *Settings) error {
	if s.ContentRoot == "" {
		return errors.New("contentroot must not be empty")
	}
	info, err := os.Stat(s.ContentRoot)
	if err != nil {
		return fmt.Errorf("contentroot: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("contentroot %q is not a directory", s.ContentRoot)
	}
	return nil
}
