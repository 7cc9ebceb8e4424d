package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MBhoomika/serene-ai/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show the current configuration, or change a setting.

Settings:
  server_url       Base URL of the Serene server
  clipboard        Copy each one-shot reply to the clipboard (true/false)
  markdown_style   Glamour style for rendered replies (dark, light, auto)
  save_history     Keep a local transcript of chat sessions (true/false)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("server_url      %s\n", cfg.ServerURL)
		fmt.Printf("clipboard       %t\n", cfg.CopyToClipboard)
		fmt.Printf("markdown_style  %s\n", cfg.MarkdownStyle)
		fmt.Printf("save_history    %t\n", cfg.SaveHistory)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard must be true or false")
		}
		cfg.CopyToClipboard = b
	case "markdown_style":
		switch value {
		case "dark", "light", "auto":
			cfg.MarkdownStyle = value
		default:
			return fmt.Errorf("markdown_style must be dark, light, or auto")
		}
	case "save_history":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("save_history must be true or false")
		}
		cfg.SaveHistory = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("%s set to %s\n", key, value)
	return nil
}
