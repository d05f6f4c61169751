package cli

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/eartask-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage eartask configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (EARTASK_* prefix, .env supported)
2. Config file (config.yaml)
3. Default values

User preferences (last phone, auto-confirm) are stored in
~/.eartask/preferences.json

Examples:
  eartask config show
  eartask config set-yes true
  eartask config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetYesCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			prefsHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			prefs, err := prefsHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user preferences: %v\n\n", err)
				prefs = &config.UserConfig{}
			}

			printConfig(out, cfg, prefs, prefsHandler.GetConfigPath())
			return nil
		},
	}
}

func printConfig(out io.Writer, cfg *config.Config, prefs *config.UserConfig, prefsPath string) {
	fmt.Fprintln(out, "eartask Configuration")
	fmt.Fprintln(out, "=====================")

	fmt.Fprintln(out, "User Preferences:")
	fmt.Fprintf(out, "  File:             %s\n", prefsPath)
	if prefs.LastPhone != "" {
		fmt.Fprintf(out, "  Last Phone:       %s\n", prefs.LastPhone)
	} else {
		fmt.Fprintf(out, "  Last Phone:       (not set)\n")
	}
	fmt.Fprintf(out, "  Auto Confirm:     %s\n", yesNo(prefs.AssumeYes))

	fmt.Fprintln(out, "\nGame API:")
	fmt.Fprintf(out, "  Base URL:         %s\n", cfg.API.BaseURL)
	fmt.Fprintf(out, "  Sign Key:         %s\n", maskSecret(cfg.API.SignKey))
	fmt.Fprintf(out, "  Timeout:          %s\n", cfg.API.Timeout)
	fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
		cfg.API.RateLimit.Requests, cfg.API.RateLimit.Burst)

	fmt.Fprintln(out, "\nBatches:")
	fmt.Fprintf(out, "  Pacing Delay:     %s\n", cfg.Batch.PacingDelay)
	fmt.Fprintf(out, "  Stop After:       %d consecutive failures\n", cfg.Batch.MaxConsecutiveFailures)
	fmt.Fprintf(out, "  Resource Cap:     %d\n", cfg.Batch.ResourceCap)
	fmt.Fprintf(out, "  Supplement:       %d currency\n", cfg.Batch.DefaultSupplement)

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	if cfg.Database.Type == "postgres" {
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
		fmt.Fprintf(out, "  Pool:             %d open, %d idle\n", cfg.Database.Pool.MaxOpen, cfg.Database.Pool.MaxIdle)
	} else {
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	}

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %s\n", yesNo(cfg.Metrics.Enabled))
	if cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  Endpoint:         http://%s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)
	}
}

// newConfigSetYesCommand toggles automatic confirmation
func newConfigSetYesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-yes <true|false>",
		Short: "Answer yes to every confirmation by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", args[0])
			}

			prefsHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := prefsHandler.SetAssumeYes(enabled); err != nil {
				return fmt.Errorf("failed to save preference: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Auto confirm: %s\n", yesNo(enabled))
			return nil
		},
	}
}

// newConfigClearCommand removes every user preference
func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefsHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := prefsHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	return u.String()
}

// maskSecret keeps the first two characters of a secret
func maskSecret(secret string) string {
	switch {
	case secret == "":
		return "(not set)"
	case len(secret) <= 4:
		return "****"
	default:
		return secret[:2] + "****"
	}
}
