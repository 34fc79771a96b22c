package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/feastkit/basil/internal/nav"
)

const (
	defaultServerURL  = "http://127.0.0.1:8044"
	defaultTransition = nav.DefaultTransition
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	ServerURL    string        `mapstructure:"server-url"`
	StateDir     string        `mapstructure:"state-dir"`
	Local        bool          `mapstructure:"local"`
	DataDir      string        `mapstructure:"data-dir"`
	SeedFile     string        `mapstructure:"seed-file"`
	Transition   time.Duration `mapstructure:"transition"`
	GestureCells int           `mapstructure:"gesture-cells"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("BASIL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("server-url", defaultServerURL)
	v.SetDefault("state-dir", filepath.Join(home, ".local", "state", "basil"))
	v.SetDefault("local", false)
	v.SetDefault("data-dir", filepath.Join(home, ".local", "share", "basil"))
	v.SetDefault("seed-file", "")
	v.SetDefault("transition", defaultTransition)
	v.SetDefault("gesture-cells", nav.DefaultGestureCells)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "basil", "config.json"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// Expand ~ in paths
	for _, p := range []*string{&cfg.StateDir, &cfg.DataDir, &cfg.SeedFile} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}

	return cfg, nil
}
