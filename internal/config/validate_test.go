package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{
		Version: "1",
		Backend: BackendConfig{BaseURL: "https://backend.example.com"},
	}
	cfg.Defaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			"bad version",
			func(c *Config) { c.Version = "2" },
			"unsupported version",
		},
		{
			"bad bind",
			func(c *Config) { c.Server.Bind = "not-an-addr::::" },
			"bind address",
		},
		{
			"missing backend url",
			func(c *Config) { c.Backend.BaseURL = "" },
			"base_url is required",
		},
		{
			"bad scheme",
			func(c *Config) { c.Backend.BaseURL = "ftp://example.com" },
			"http or https",
		},
		{
			"no host",
			func(c *Config) { c.Backend.BaseURL = "http://" },
			"no host",
		},
		{
			"bad schedule",
			func(c *Config) { c.Probe.Enabled = true; c.Probe.Schedule = "often" },
			"probe schedule",
		},
		{
			"bad log level",
			func(c *Config) { c.Log.Level = "loud" },
			"log level",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_DisabledProbeSkipsSchedule(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Probe.Enabled = false
	cfg.Probe.Schedule = "nonsense"

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
