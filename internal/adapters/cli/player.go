package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andrescamacho/eartask-go/internal/application/player/commands"
	"github.com/andrescamacho/eartask-go/internal/application/player/queries"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		phone    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with phone and password",
		Long: `Log in to the game and store the session locally.

The phone defaults to the last one used. When --password is omitted the
password is read from the terminal without echo.

Examples:
  eartask login --phone 13800000000
  eartask login`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				if phone == "" {
					if prefs, err := c.Prefs.Load(); err == nil {
						phone = prefs.LastPhone
					}
				}
				if phone == "" {
					line, err := c.Prompter.ReadLine("Phone")
					if err != nil {
						return fmt.Errorf("failed to read phone: %w", err)
					}
					phone = line
				}
				if password == "" {
					secret, err := readPassword(c)
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}
					password = secret
				}

				response, err := c.Mediator.Send(ctx, &commands.LoginCommand{
					Phone:    phone,
					Password: password,
				})
				if err != nil {
					return err
				}

				s := response.(*commands.LoginResponse).Session
				if err := c.Prefs.SetLastPhone(s.Phone); err != nil {
					c.Logger.Log("WARNING", "Failed to remember phone", map[string]interface{}{
						"error": err.Error(),
					})
				}

				name := s.User.Name
				if name == "" {
					name = s.Phone
				}
				fmt.Fprintf(c.Out, "✓ Logged in as %s\n", name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (11 digits)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

// readPassword reads without echo on a terminal, or a plain line otherwise
func readPassword(c *Container) (string, error) {
	fd := int(os.Stdin.Fd())
	if c.Prompter.source != os.Stdin || !term.IsTerminal(fd) {
		return c.Prompter.ReadLine("Password")
	}

	fmt.Fprint(c.Out, "Password: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(c.Out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				if _, err := c.Mediator.Send(ctx, &commands.LogoutCommand{}); err != nil {
					return err
				}
				fmt.Fprintln(c.Out, "✓ Logged out")
				return nil
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, func(ctx context.Context, c *Container) error {
				response, err := c.Mediator.Send(ctx, &queries.GetSessionQuery{})
				if err != nil {
					return err
				}

				s := response.(*queries.GetSessionResponse).Session
				fmt.Fprintln(c.Out, "Session")
				fmt.Fprintln(c.Out, "=======")
				fmt.Fprintf(c.Out, "  Phone:       %s\n", s.Phone)
				if s.User.Name != "" {
					fmt.Fprintf(c.Out, "  Name:        %s\n", s.User.Name)
				}
				if s.User.ID != 0 {
					fmt.Fprintf(c.Out, "  User ID:     %d\n", s.User.ID)
				}
				fmt.Fprintf(c.Out, "  VIP Level:   %d\n", s.User.VIPLevel)
				if s.User.InviteCode != "" {
					fmt.Fprintf(c.Out, "  Invite Code: %s\n", s.User.InviteCode)
				}
				fmt.Fprintf(c.Out, "  Token:       %s\n", s.MaskedToken())
				fmt.Fprintf(c.Out, "  Logged In:   %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}
