package main

import "time"

const (
	defaultBindHost         = "127.0.0.1"
	defaultAPIPort          = 8044
	defaultSnapshotInterval = 24 * time.Hour
	defaultSnapshotKeep     = 14
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Host             string        `mapstructure:"host"`
	APIPort          int           `mapstructure:"api-port"`
	APIAddr          string        `mapstructure:"api-addr"`
	DataDir          string        `mapstructure:"data-dir"`
	SeedFile         string        `mapstructure:"seed-file"`
	LogRequests      bool          `mapstructure:"log-requests"`
	SnapshotEnabled  bool          `mapstructure:"snapshot-enabled"`
	SnapshotInterval time.Duration `mapstructure:"snapshot-interval"`
	SnapshotKeep     int           `mapstructure:"snapshot-keep"`
	ConfigPath       string        `mapstructure:"-"` // not from config file
}
