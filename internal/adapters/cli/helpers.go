package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// runWithContainer builds the container for cmd, runs fn and translates errors
// into user-facing messages
func runWithContainer(cmd *cobra.Command, fn func(ctx context.Context, c *Container) error) error {
	opts := baseOptions
	opts.ConfigPath = configPath
	opts.AssumeYes = opts.AssumeYes || assumeYes
	opts.Verbose = verbose
	opts.In = cmd.InOrStdin()
	opts.Out = cmd.OutOrStdout()

	c, err := NewContainer(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	return describeError(fn(c.Context(cmd.Context()), c))
}

// describeError rewrites domain errors into actionable messages
func describeError(err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *shared.ValidationError
		apiErr        *shared.APIError
		networkErr    *shared.NetworkError
	)

	switch {
	case errors.Is(err, shared.ErrNoSession):
		return fmt.Errorf("not logged in: run 'eartask login' first")
	case shared.IsAuthError(err):
		return fmt.Errorf("session expired: run 'eartask login' again")
	case errors.Is(err, shared.ErrOperationInProgress):
		return fmt.Errorf("another operation is in progress, try again when it finishes")
	case errors.As(err, &validationErr):
		return fmt.Errorf("invalid %s: %s", validationErr.Field, validationErr.Message)
	case errors.As(err, &apiErr):
		return fmt.Errorf("request rejected: %s", apiErr.Message)
	case errors.As(err, &networkErr):
		return fmt.Errorf("could not reach the game server: %v", networkErr.Cause)
	default:
		return err
	}
}

// parseIslandID parses a positional island ID
func parseIslandID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid island id %q", arg)
	}
	return id, nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
