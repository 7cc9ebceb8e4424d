package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MBhoomika/serene-ai/internal/api"
	"github.com/MBhoomika/serene-ai/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in to the Serene server",
	Long: `Sign in to the Serene server and save the session token locally.

The password is read from the terminal without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		// Best effort server-side; the local token is cleared regardless.
		_ = client.Logout(context.Background())

		if err := config.ClearToken(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func runLogin(cmd *cobra.Command, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	cfg, _ := config.Load()
	client := api.NewClient(serverURL(cfg))

	token, err := client.Login(context.Background(), username, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Login failed"))
		return fmt.Errorf("login failed: %w", err)
	}

	if err := config.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	cfg.Username = username
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Welcome back, %s.\n", username)
	return nil
}

func serverURL(cfg config.Config) string {
	if serverFlag != "" {
		return serverFlag
	}
	return cfg.ServerURL
}

// readPassword prompts for a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(string(data))
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
