package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rauncher/rauncher/internal/api"
	"github.com/rauncher/rauncher/internal/auth"
)

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "manage storefront authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "authenticate via the device-code flow",
				Action: authLoginAction,
			},
			{
				Name:   "logout",
				Usage:  "delete the stored credential",
				Action: authLogoutAction,
			},
			{
				Name:   "status",
				Usage:  "show the current authentication state",
				Action: authStatusAction,
			},
			{
				Name:   "token",
				Usage:  "print a valid access token, refreshing it first if needed",
				Action: authTokenAction,
			},
		},
	}
}

func authLoginAction(ctx context.Context, cmd *cli.Command) error {
	manager, shutdown, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer flush(shutdown)

	// The user has to open a browser and type the code; without a terminal
	// nobody is there to do it.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("login requires an interactive terminal")
	}

	client := api.NewClient()

	deviceAuth, err := client.StartDeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to start authentication: %w", err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Open this URL in your browser: %s\n", deviceAuth.VerificationURI)
	fmt.Fprintf(cmd.Root().Writer, "Enter this code: %s\n", deviceAuth.UserCode)
	fmt.Fprintln(cmd.Root().Writer, "Waiting for authentication...")

	token, err := client.WaitForDeviceAuth(ctx, deviceAuth)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := manager.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	slog.InfoContext(ctx, "authenticated", "account_id", token.AccountID)
	fmt.Fprintln(cmd.Root().Writer, "Successfully authenticated.")
	return nil
}

func authLogoutAction(ctx context.Context, cmd *cli.Command) error {
	manager, shutdown, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer flush(shutdown)

	if err := manager.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, "Logged out.")
	return nil
}

func authStatusAction(ctx context.Context, cmd *cli.Command) error {
	manager, shutdown, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer flush(shutdown)

	token, err := manager.Token()
	if errors.Is(err, auth.ErrNotAuthenticated) {
		fmt.Fprintln(cmd.Root().Writer, "Not authenticated. Run 'rauncher auth login' first.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Authenticated as account %s\n", token.AccountID)
	fmt.Fprintf(cmd.Root().Writer, "Access token expires at %s\n", token.ExpiresAt.Format(time.RFC3339))
	if manager.NeedsRefresh() {
		fmt.Fprintln(cmd.Root().Writer, "Token expires soon; it will be refreshed on next use.")
	}
	return nil
}

func authTokenAction(ctx context.Context, cmd *cli.Command) error {
	manager, shutdown, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer flush(shutdown)

	token, err := manager.EnsureValidToken(ctx, api.NewClient())
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return errors.New("not authenticated, run 'rauncher auth login' first")
	}
	if err != nil {
		return fmt.Errorf("failed to obtain a valid token: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, token.AccessToken)
	return nil
}

// flush drains buffered log records on command exit.
func flush(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to flush logs:", err)
	}
}
