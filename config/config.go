package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the read-only startup configuration. Defaults match the original
// deployment: signaling on port 4433 at the root path, version queries
// allowed.
type Config struct {
	WSListenAddr    string `mapstructure:"ws_listen_addr"`
	WSPath          string `mapstructure:"ws_path"`
	APIListenAddr   string `mapstructure:"api_listen_addr"`
	AllowVersionCmd bool   `mapstructure:"allow_version_cmd"`
	LogLevel        string `mapstructure:"log_level"`
}

// Load reads the configuration from the given yaml file. An empty path loads
// defaults only; a non-empty path must point to a readable file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("ws_listen_addr", ":4433")
	v.SetDefault("ws_path", "/")
	v.SetDefault("api_listen_addr", ":8080")
	v.SetDefault("allow_version_cmd", true)
	v.SetDefault("log_level", "debug")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
