// Package config handles YAML configuration loading, environment variable
// expansion, and validation for approvalgate.
package config

import "time"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Probe   ProbeConfig   `yaml:"probe"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds the HTTP server settings for the approval page.
type ServerConfig struct {
	Bind            string        `yaml:"bind"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BackendConfig locates the approval backend. The base URL comes from here
// and nowhere else — token-embedded backend URLs are ignored on purpose.
type BackendConfig struct {
	BaseURL      string            `yaml:"base_url"`
	Timeout      time.Duration     `yaml:"timeout"`
	ProbeTimeout time.Duration     `yaml:"probe_timeout"`
	Headers      map[string]string `yaml:"headers"`
}

// ProbeConfig controls the periodic backend reachability check.
type ProbeConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// Defaults fills zero values with sensible defaults.
func (c *Config) Defaults() {
	if c.Server.Bind == "" {
		c.Server.Bind = "127.0.0.1:8484"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		// Must outlast the backend timeout so the confirm handler can
		// finish writing the failure page after a slow relay call.
		c.Server.WriteTimeout = 35 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 30 * time.Second
	}
	if c.Backend.ProbeTimeout <= 0 {
		c.Backend.ProbeTimeout = 10 * time.Second
	}
	if c.Probe.Schedule == "" {
		c.Probe.Schedule = "* * * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
