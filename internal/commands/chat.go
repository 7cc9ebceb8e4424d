package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MBhoomika/serene-ai/internal/config"
	"github.com/MBhoomika/serene-ai/internal/history"
	"github.com/MBhoomika/serene-ai/internal/models"
	"github.com/MBhoomika/serene-ai/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with Serene.

Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, _ := config.Load()
	client := newAPIClient(cfg)

	logger, err := newFileLogger()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := []tui.Option{tui.WithLogger(logger.Sugar())}

	// Keep a local transcript alongside the server-side history.
	if cfg.SaveHistory {
		store, err := history.DefaultStore()
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		conv, err := store.CreateConversation()
		if err != nil {
			return fmt.Errorf("failed to start conversation: %w", err)
		}
		opts = append(opts, tui.WithRecorder(func(origin models.Origin, content string) {
			if err := store.AddMessage(conv.ID, string(origin), content); err != nil {
				logger.Sugar().Warnw("failed to record transcript line", "error", err)
			}
		}))
	}

	return tui.RunChat(client, cfg.Username, opts...)
}

// newFileLogger writes structured logs to ~/.serene/serene.log so the TUI
// screen stays clean.
func newFileLogger() (*zap.Logger, error) {
	dir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(dir, "serene.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	return zcfg.Build()
}
