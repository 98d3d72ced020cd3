package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/robfig/cron/v3"
)

// Validate checks structural correctness of a loaded configuration.
// It accumulates all problems rather than stopping at the first.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version != "" && cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q", cfg.Version))
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.Server.Bind); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid bind address %q: %w", cfg.Server.Bind, err))
	}

	errs = append(errs, validateBackendURL(cfg.Backend.BaseURL)...)

	if cfg.Probe.Enabled {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(cfg.Probe.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("config: invalid probe schedule %q: %w", cfg.Probe.Schedule, err))
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: invalid log level %q", cfg.Log.Level))
	}

	return errors.Join(errs...)
}

func validateBackendURL(base string) []error {
	if base == "" {
		return []error{errors.New("config: backend.base_url is required")}
	}

	u, err := url.Parse(base)
	if err != nil {
		return []error{fmt.Errorf("config: invalid backend.base_url: %w", err)}
	}

	var errs []error
	if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("config: backend.base_url must be http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		errs = append(errs, errors.New("config: backend.base_url has no host"))
	}
	return errs
}
