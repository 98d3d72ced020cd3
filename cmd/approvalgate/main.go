// Package main is the entry point for the approvalgate CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/podkit/approvalgate/internal/config"
	"github.com/podkit/approvalgate/internal/gateway"
	"github.com/podkit/approvalgate/internal/probe"
	"github.com/podkit/approvalgate/internal/relay"
	"github.com/podkit/approvalgate/internal/token"
	"github.com/spf13/cobra"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "approvalgate",
		Short:         "Self-hosted approval page for the podcast pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), serveCmd(), configCmd(), tokenCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("approvalgate %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the approval page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if cfgPath == "" {
				resolved, err := resolveConfigPath()
				if err != nil {
					return err
				}
				cfgPath = resolved
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			logger := newLogger(cfg.Log.Level)

			rel := relay.New(relay.Config{
				BaseURL:      cfg.Backend.BaseURL,
				Timeout:      cfg.Backend.Timeout,
				ProbeTimeout: cfg.Backend.ProbeTimeout,
				Headers:      cfg.Backend.Headers,
			}, logger)

			var prober *probe.Prober
			var ps gateway.ProbeSource
			if cfg.Probe.Enabled {
				prober = probe.New(rel, cfg.Probe.Schedule, logger)
				ps = prober
			}

			gw, err := gateway.New(gateway.Config{
				Bind:            cfg.Server.Bind,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			}, rel, ps, logger)
			if err != nil {
				return err
			}

			if prober != nil {
				if err := prober.Start(); err != nil {
					return err
				}
			}
			if err := gw.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+time.Second)
			defer cancel()
			if prober != nil {
				_ = prober.Stop(shutdownCtx)
			}
			return gw.Stop(shutdownCtx)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			fmt.Printf("Configuration OK (backend: %s)\n", cfg.Backend.BaseURL)
			return nil
		},
	})
	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "decode <token>",
		Short: "Decode an approval token without verifying its signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			claims, err := token.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Job ID: %s\n", claims.DisplayJobID())
			fmt.Printf("Stage:  %s\n", claims.DisplayStage())
			fmt.Printf("Action: %s\n", claims.DisplayAction())
			if claims.Exp == 0 {
				fmt.Println("Expiry: none")
				return nil
			}
			state := "valid"
			if claims.Expired(time.Now()) {
				state = "expired"
			}
			fmt.Printf("Expiry: %s (%s)\n", time.Unix(claims.Exp, 0).UTC().Format(time.RFC3339), state)
			return nil
		},
	})
	return cmd
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/approvalgate/approvalgate.yaml → ./approvalgate.yaml
func resolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "approvalgate", "approvalgate.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "approvalgate", "approvalgate.yaml"))
	}

	candidates = append(candidates, "approvalgate.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
