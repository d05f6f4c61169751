package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	assumeYes  bool
	verbose    bool

	// baseOptions carries collaborators injected by NewRootCommandWith
	baseOptions ContainerOptions
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(ContainerOptions{})
}

// NewRootCommandWith creates the root command; every subcommand builds its
// container from base plus the global flags
func NewRootCommandWith(base ContainerOptions) *cobra.Command {
	baseOptions = base

	rootCmd := &cobra.Command{
		Use:   "eartask",
		Short: "eartask - manage islands and free searches from the terminal",
		Long: `eartask is a command-line companion for the island game.

It logs in once, keeps the session locally, and runs the repetitive
island and search chores as confirmed, paced batches.

Examples:
  eartask login --phone 13800000000
  eartask island list
  eartask island collect-all
  eartask island supplement-all --yes
  eartask search info
  eartask search run
  eartask history --limit 10`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml or ~/.eartask/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"Answer yes to every confirmation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewWhoamiCommand())
	rootCmd.AddCommand(NewIslandCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
