package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/llm"
	"github.com/abhisek/grimoire/internal/logging"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated content without starting the game",
	Long: `Run a single content request and print the result.

This is a stateless developer tool: no database, no events, no TUI.
Useful for evaluating prompt quality and trying new models.`,
}

var previewCurriculumCmd = &cobra.Command{
	Use:   "curriculum <topic>",
	Short: "Generate a curriculum for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := previewService(cmd)
		if err != nil {
			return err
		}

		c, err := svc.RequestCurriculum(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("generate curriculum (%s): %w", content.Classify(err), err)
		}
		return printResult(cmd, c)
	},
}

var previewEncountersCmd = &cobra.Command{
	Use:   "encounters",
	Short: "Generate the encounter set for one sub-topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		module, _ := cmd.Flags().GetString("module")
		topic, _ := cmd.Flags().GetString("topic")

		svc, err := previewService(cmd)
		if err != nil {
			return err
		}

		d, err := svc.RequestEncounterSet(cmd.Context(), subject, module, topic)
		if err != nil {
			return fmt.Errorf("generate encounters (%s): %w", content.Classify(err), err)
		}
		return printResult(cmd, d)
	},
}

func init() {
	previewCmd.PersistentFlags().Bool("json", false, "Print JSON instead of YAML")

	previewEncountersCmd.Flags().String("subject", "", "Curriculum subject (required)")
	previewEncountersCmd.Flags().String("module", "", "Module title (required)")
	previewEncountersCmd.Flags().String("topic", "", "Sub-topic title (required)")
	_ = previewEncountersCmd.MarkFlagRequired("subject")
	_ = previewEncountersCmd.MarkFlagRequired("module")
	_ = previewEncountersCmd.MarkFlagRequired("topic")

	previewCmd.AddCommand(previewCurriculumCmd)
	previewCmd.AddCommand(previewEncountersCmd)
}

// previewService builds a content service with no event log. Warnings go
// to stderr so stdout stays machine-readable.
func previewService(cmd *cobra.Command) (*content.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return content.NewService(provider, cfg.Content), nil
}

func printResult(cmd *cobra.Command, v any) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	return writeResult(cmd.OutOrStdout(), v, asJSON)
}

func writeResult(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
