package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andrescamacho/eartask-go/internal/application/search/commands"
	"github.com/andrescamacho/eartask-go/internal/application/search/queries"
)

// NewSearchCommand creates the search command with subcommands
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Use the daily free resource searches",
		Long: `Use the daily free resource searches.

"search run" spends every free search left today, one at a time, and stops
early after repeated consecutive failures.

Examples:
  eartask search info
  eartask search run`,
	}

	cmd.AddCommand(newSearchInfoCommand())
	cmd.AddCommand(newSearchRunCommand())

	return cmd
}

func newSearchInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show free searches left, output and workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &queries.GetSearchProfileQuery{})
				if err != nil {
					return err
				}

				profile := response.(*queries.GetSearchProfileResponse).Profile
				fmt.Fprint(c.Out, NewTreeFormatter(useColors(c)).FormatProfile(profile))
				return nil
			})
		},
	}
}

func newSearchRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Spend every free search left today",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &commands.RunBatchSearchCommand{})
				if err != nil {
					return err
				}

				result := response.(*commands.RunBatchSearchResponse)
				if result.Profile != nil {
					fmt.Fprintf(c.Out, "Free searches left today: %d\n", result.Profile.Remaining())
				}
				return nil
			})
		},
	}
}

// useColors enables ANSI colors only when writing to a terminal
func useColors(c *Container) bool {
	if os.Getenv("NO_COLOR") != "" || c.Out != os.Stdout {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
