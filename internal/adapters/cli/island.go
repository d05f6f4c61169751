package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/eartask-go/internal/application/island/commands"
	"github.com/andrescamacho/eartask-go/internal/application/island/queries"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

// NewIslandCommand creates the island command with subcommands
func NewIslandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "island",
		Short: "Inspect and operate your islands",
		Long: `Inspect and operate your islands.

Every action asks for confirmation first (skip with --yes). Batch actions
run one island at a time with a short pause between calls; a failure on one
island never stops the others.

Examples:
  eartask island list
  eartask island start 42
  eartask island supplement 42 --amount 20
  eartask island collect-all
  eartask island supplement-all`,
	}

	cmd.AddCommand(newIslandListCommand())
	cmd.AddCommand(newIslandStartCommand())
	cmd.AddCommand(newIslandCollectCommand())
	cmd.AddCommand(newIslandSupplementCommand())
	cmd.AddCommand(newIslandCollectAllCommand())
	cmd.AddCommand(newIslandSupplementAllCommand())

	return cmd
}

func newIslandListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List islands with their 24h projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &queries.ListIslandsQuery{})
				if err != nil {
					return err
				}

				views := response.(*queries.ListIslandsResponse).Views
				if len(views) == 0 {
					fmt.Fprintln(c.Out, "No islands found")
					return nil
				}

				renderIslands(c.Out, views)
				return nil
			})
		},
	}
}

func newIslandStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <island-id>",
		Short: "Start production, collecting pending output first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIslandID(args[0])
			if err != nil {
				return err
			}

			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &commands.StartIslandCommand{IslandID: id})
				if err != nil {
					return err
				}

				result := response.(*commands.StartIslandResponse)
				renderRefreshed(c, result.Confirmed, result.Islands)
				return nil
			})
		},
	}
}

func newIslandCollectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect <island-id>",
		Short: "Collect the output of one island",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIslandID(args[0])
			if err != nil {
				return err
			}

			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &commands.CollectIslandCommand{IslandID: id})
				if err != nil {
					return err
				}

				result := response.(*commands.CollectIslandResponse)
				renderRefreshed(c, result.Confirmed, result.Islands)
				return nil
			})
		},
	}
}

func newIslandSupplementCommand() *cobra.Command {
	var amount int

	cmd := &cobra.Command{
		Use:   "supplement <island-id>",
		Short: "Spend currency to replenish one island's resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIslandID(args[0])
			if err != nil {
				return err
			}

			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &commands.SupplementIslandCommand{
					IslandID: id,
					Amount:   amount,
				})
				if err != nil {
					return err
				}

				result := response.(*commands.SupplementIslandResponse)
				renderRefreshed(c, result.Confirmed, result.Islands)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 0, "Currency to spend (default from batch.default_supplement)")

	return cmd
}

func newIslandCollectAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect-all",
		Short: "Collect the output of every island that has some",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &commands.CollectAllCommand{})
				if err != nil {
					return err
				}

				result := response.(*commands.CollectAllResponse)
				renderRefreshed(c, result.Confirmed, result.Islands)
				return nil
			})
		},
	}
}

func newIslandSupplementAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "supplement-all",
		Short: "Top up every island to a 24h runway and start idle ones",
		Long: `Top up every island whose resource will not last 24 hours, then
start every island that has never been started.

Supplements run first, then starts. Output waiting on an idle island is
collected just before it starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &commands.SupplementAndStartAllCommand{})
				if err != nil {
					return err
				}

				result := response.(*commands.SupplementAndStartAllResponse)
				renderRefreshed(c, result.Confirmed, result.Islands)
				return nil
			})
		},
	}
}

// renderRefreshed prints the refetched islands after a confirmed workflow
func renderRefreshed(c *Container, confirmed bool, islands []*island.Island) {
	if !confirmed || islands == nil {
		return
	}
	fmt.Fprintln(c.Out)
	renderIslands(c.Out, services.BuildViews(islands, c.Clock.Now()))
}

// renderIslands prints one row per island
func renderIslands(out io.Writer, views []services.IslandView) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tRESOURCE\tLASTS\tNEED 24H\tOUTPUT\tRUNNING")
	fmt.Fprintln(w, "--\t-----\t------\t--------\t-----\t--------\t------\t-------")

	var totalOutput float64
	totalNeeded := 0
	for _, view := range views {
		isl := view.Island
		totalOutput += isl.ProduceNum
		totalNeeded += view.CurrencyNeeded

		need := "-"
		if view.CurrencyNeeded > 0 {
			need = fmt.Sprintf("%d", view.CurrencyNeeded)
		}

		running := "-"
		if isl.Status == island.StatusProducing {
			running = view.Running.String()
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			isl.ID,
			isl.Title,
			statusLabel(view),
			formatAmount(isl.Resource),
			formatHours(view.RemainingHours),
			need,
			formatAmount(isl.ProduceNum),
			running,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %d islands, %s output to collect, %d currency for a 24h runway\n",
		len(views), formatAmount(totalOutput), totalNeeded)
}

func statusLabel(view services.IslandView) string {
	if view.Expired {
		return "EXPIRED"
	}
	return view.Island.Status.String()
}
