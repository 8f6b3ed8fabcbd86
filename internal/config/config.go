// Package config loads docxhtml settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOCXHTML_SANITIZE.
const EnvPrefix = "DOCXHTML"

// Config holds the conversion defaults and server settings.
type Config struct {
	FullDocument  bool   `mapstructure:"full_document"`
	Sanitize      bool   `mapstructure:"sanitize"`
	IgnoreSpacing bool   `mapstructure:"ignore_spacing"`
	Debug         bool   `mapstructure:"debug"`
	Server        Server `mapstructure:"server"`
}

// Server configures the HTTP conversion service.
type Server struct {
	Addr           string `mapstructure:"addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration into v. With an empty path, .docxhtml.yaml is
// looked up in the home directory and the working directory; a missing
// file is not an error. An explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".docxhtml")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("full_document", false)
	v.SetDefault("sanitize", false)
	v.SetDefault("ignore_spacing", false)
	v.SetDefault("debug", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 32<<20)
}
