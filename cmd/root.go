package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/grimoire/internal/config"
	"github.com/abhisek/grimoire/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Spooky AI study companion",
	Long: "Grimoire summons a curriculum for any topic, then teaches it one " +
		"haunted encounter at a time. Banish spirits by answering their questions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/grimoire/config.yaml)")
	flags.String("env-file", "", "Path to a .env file with provider keys and settings")
	flags.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	flags.String("model", "", "Model for the selected provider")
	flags.String("db", "", "Path to SQLite database file (overrides GRIMOIRE_DB env var)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers defaults, the config file, the environment and the
// persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	db, _ := cmd.Flags().GetString("db")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(config.Options{
		File:    file,
		EnvFile: envFile,
		Overrides: config.Overrides{
			Provider: provider,
			Model:    model,
			DBPath:   db,
			LogLevel: level,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to
// the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the event log it points at.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
