package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/eartask-go/internal/application/batch/queries"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent batch runs",
		Long: `Show the summaries of recent batch runs, newest first.

Example:
  eartask history --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &queries.ListRunsQuery{Limit: limit})
				if err != nil {
					return err
				}

				runs := response.(*queries.ListRunsResponse).Runs
				if len(runs) == 0 {
					fmt.Fprintln(c.Out, "No runs recorded yet")
					return nil
				}

				w := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSTARTED\tKIND\tTOTAL\tOK\tFAILED\tSTOPPED EARLY\tDURATION")
				fmt.Fprintln(w, "--\t-------\t----\t-----\t--\t------\t-------------\t--------")
				for _, run := range runs {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
						run.ID,
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						run.Kind,
						run.Total,
						run.SuccessCount,
						run.FailCount,
						yesNo(run.StoppedEarly),
						run.Duration().Round(100*time.Millisecond),
					)
				}
				w.Flush()

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}
