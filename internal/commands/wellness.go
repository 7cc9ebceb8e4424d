package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MBhoomika/serene-ai/internal/config"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show an inspirational quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		quote, err := client.Quote(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch quote: %w", err)
		}
		fmt.Println(lipgloss.NewStyle().Foreground(colorAccent).Italic(true).Render("💭 " + quote))
		return nil
	},
}

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Show today's wellness challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		challenge, err := client.Challenge(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch challenge: %w", err)
		}
		fmt.Printf("%s %s\n", challenge.Icon,
			lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(challenge.Title))
		fmt.Println(lipgloss.NewStyle().Foreground(colorText).Render(challenge.Description))
		return nil
	},
}

var moodNoteFlag string

var moodCmd = &cobra.Command{
	Use:   "mood <mood>",
	Short: "Log a mood check-in",
	Long:  `Log how you're feeling right now, with an optional note (--note).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		if err := client.SaveMood(context.Background(), args[0], moodNoteFlag); err != nil {
			return fmt.Errorf("failed to save mood: %w", err)
		}
		fmt.Println("Mood saved. 🌸")
		return nil
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal [title]",
	Short: "Write a journal entry",
	Long:  `Write a journal entry. The body is read from stdin until EOF.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) > 0 {
			title = args[0]
		}

		fmt.Println("Write your entry, then press Ctrl+D:")
		content, err := readAll(cmd)
		if err != nil {
			return err
		}
		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("entry cannot be empty")
		}

		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		if err := client.SaveJournal(context.Background(), title, content, ""); err != nil {
			return fmt.Errorf("failed to save journal entry: %w", err)
		}
		fmt.Println("Journal entry saved. 📝")
		return nil
	},
}

var meditateCmd = &cobra.Command{
	Use:   "meditate <minutes> [type]",
	Short: "Log a completed meditation session",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil || minutes <= 0 {
			return fmt.Errorf("minutes must be a positive number")
		}
		kind := "meditation"
		if len(args) > 1 {
			kind = args[1]
		}

		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		if err := client.LogMeditation(context.Background(), minutes, kind); err != nil {
			return fmt.Errorf("failed to log meditation: %w", err)
		}
		fmt.Printf("Logged %d minutes of %s. 🧘\n", minutes, kind)
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity <breathing|meditation|creativity|stretching>",
	Short: "Start a guided wellness activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		client := newAPIClient(cfg)

		opener, err := client.StartActivity(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to start activity: %w", err)
		}
		fmt.Println(lipgloss.NewStyle().Foreground(colorText).Render(opener))
		return nil
	},
}

func readAll(cmd *cobra.Command) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := cmd.InOrStdin().Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return sb.String(), nil
}

func init() {
	moodCmd.Flags().StringVar(&moodNoteFlag, "note", "", "Optional note for the check-in")
}
