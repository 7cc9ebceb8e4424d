package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MBhoomika/serene-ai/internal/api"
	"github.com/MBhoomika/serene-ai/internal/config"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the Serene server",
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	username, err := promptLine(reader, "Username: ")
	if err != nil {
		return err
	}
	email, err := promptLine(reader, "Email: ")
	if err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	cfg, _ := config.Load()
	client := api.NewClient(serverURL(cfg))

	if err := client.Register(context.Background(), username, email, password); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Registration failed"))
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created. Run 'serene login %s' to sign in.\n", username)
	return nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("value cannot be empty")
	}
	return value, nil
}
