package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MBhoomika/serene-ai/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Serene server",
	Long: `Run the Serene server.

Configuration is read from the environment (and a .env file if present):
  SERENE_ADDR         Listen address (default :8490)
  SERENE_DB_PATH      SQLite database path (default serene.db)
  SERENE_SESSION_TTL  Session lifetime (default 720h)
  OPENAI_API_KEY      API key for the chat responder (optional)
  OPENAI_BASE_URL     Override the OpenAI-compatible endpoint
  OPENAI_MODEL        Chat model name (default gpt-4o-mini)

Without an API key the server answers with its built-in supportive
responses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := server.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load server config: %w", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		srv, err := server.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}
