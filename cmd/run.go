package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/grimoire/internal/app"
	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/llm"
	"github.com/abhisek/grimoire/internal/logging"
	"github.com/abhisek/grimoire/internal/store"
)

// runApp loads configuration, opens the log and store, builds the content
// service and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	logPath := cfg.Log.Path
	if logPath == "" {
		if logPath, err = logging.DefaultPath(); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	logger, closer, err := logging.Open(logPath, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	logger.Info("starting", "provider", cfg.LLM.Provider, "model", provider.ModelID(),
		"db", dbPath, "session_id", sessionID)

	return app.Run(ctx, app.Options{
		Content:   content.NewService(provider, cfg.Content),
		Logger:    logger,
		SessionID: sessionID,
	})
}
