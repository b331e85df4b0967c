package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/llm"
	"github.com/abhisek/grimoire/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the curricula and encounter sets the LLM has summoned",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent summoning calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			Purpose:   purpose,
			SessionID: sessionID,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeEventList(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show what one summoning call produced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		raw, _ := cmd.Flags().GetBool("raw")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeEvent(cmd.OutOrStdout(), e, raw)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per purpose and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

var llmSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent app runs and their LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().Sessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(w, "No sessions recorded yet.")
			return nil
		}
		fmt.Fprintf(w, "%-36s  %-19s  %6s  %6s\n", "Session", "Started", "Calls", "Failed")
		fmt.Fprintln(w, rule(74))
		for _, ss := range sessions {
			fmt.Fprintf(w, "%-36s  %-19s  %6d  %6d\n",
				ss.SessionID, ss.Started.Local().Format(timeLayout), ss.Calls, ss.Failures)
		}
		return nil
	},
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.EventRepo().Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d events, kept the newest %d.\n", n, keep)
		return nil
	},
}

func writeEventList(w io.Writer, events []store.LLMRequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-8s  %-10s  %-24s  %6s  %7s  %s\n",
		"ID", "Timestamp", "Session", "Purpose", "Model", "Tokens", "Ms", "Result")
	fmt.Fprintln(w, rule(104))
	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-10s  %-24s  %6d  %7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			truncate(e.SessionID, 8),
			e.Purpose,
			truncate(e.Model, 24),
			e.InputTokens+e.OutputTokens,
			e.LatencyMs,
			result(e),
		)
	}
}

// result is a one-line outcome: what was summoned, or why it failed.
func result(e store.LLMRequestEvent) string {
	if !e.Success {
		return "✗ " + truncate(e.ErrorMessage, 40)
	}
	switch e.Purpose {
	case content.PurposeCurriculum:
		var c content.Curriculum
		if json.Unmarshal([]byte(e.ResponseBody), &c) == nil {
			return fmt.Sprintf("✓ %s (%d modules, %d topics)", truncate(c.Subject, 24), len(c.Modules), c.TopicCount())
		}
	case content.PurposeEncounters:
		var d content.TopicGameData
		if json.Unmarshal([]byte(e.ResponseBody), &d) == nil {
			return fmt.Sprintf("✓ %s (%d encounters)", truncate(d.Topic, 24), len(d.Encounters))
		}
	}
	return "✓"
}

func writeEvent(w io.Writer, e *store.LLMRequestEvent, raw bool) {
	fmt.Fprintf(w, "Event %d  %s  session %s #%d\n",
		e.ID, e.Timestamp.Local().Format(timeLayout), e.SessionID, e.Sequence)
	fmt.Fprintf(w, "%s via %s/%s, %d in / %d out tokens, %dms\n",
		e.Purpose, e.Provider, e.Model, e.InputTokens, e.OutputTokens, e.LatencyMs)
	if !e.Success {
		fmt.Fprintf(w, "Failed: %s\n", e.ErrorMessage)
	}
	fmt.Fprintln(w)

	if e.ResponseBody != "" {
		writeSummoned(w, e.Purpose, e.ResponseBody)
	}

	if !raw {
		return
	}
	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rule(60))
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, rule(60))
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

// writeSummoned prints a readable rendering of a generated curriculum or
// encounter set. Bodies that do not decode are left to --raw.
func writeSummoned(w io.Writer, purpose, body string) {
	switch purpose {
	case content.PurposeCurriculum:
		var c content.Curriculum
		if err := json.Unmarshal([]byte(body), &c); err != nil {
			fmt.Fprintf(w, "(response is not a curriculum: %v)\n", err)
			return
		}
		fmt.Fprintf(w, "Curriculum: %s\n", c.Subject)
		for i, m := range c.Modules {
			fmt.Fprintf(w, "  %d. %s\n", i+1, m.Title)
			for j, t := range m.Topics {
				fmt.Fprintf(w, "     %d.%d %s\n", i+1, j+1, t.Title)
			}
		}

	case content.PurposeEncounters:
		var d content.TopicGameData
		if err := json.Unmarshal([]byte(body), &d); err != nil {
			fmt.Fprintf(w, "(response is not an encounter set: %v)\n", err)
			return
		}
		fmt.Fprintf(w, "Crypt: %s\n", d.Topic)
		for i, enc := range d.Encounters {
			fmt.Fprintf(w, "  %d. %s: %s\n", i+1, enc.MonsterName, enc.Question)
			for k, opt := range enc.Options {
				mark := " "
				if enc.IsCorrect(k) {
					mark = "*"
				}
				fmt.Fprintf(w, "     %s %c) %s\n", mark, 'A'+k, opt)
			}
		}
	}
}

func writeUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, rule(72))
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, rule(72))

	var calls, in, out int
	for _, st := range byPurpose {
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			st.Purpose, st.Calls, st.Failures, st.InputTokens, st.OutputTokens,
			st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	fmt.Fprintln(w, rule(72))
	fmt.Fprintf(w, "%-16s  %6d  %6s  %10d  %10d  %10d\n", "TOTAL", calls, "", in, out, in+out)

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, rule(72))
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, rule(72))

	var total float64
	var unpriced []string
	for _, mu := range byModel {
		cost := "?"
		if p := llm.LookupCost(mu.Model); p != nil {
			c := p.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}

	fmt.Fprintln(w, rule(72))
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (curriculum or encounters)")
	llmListCmd.Flags().StringP("session", "s", "", "Filter by session id")
	llmViewCmd.Flags().Bool("raw", false, "Also print the raw request and response bodies")
	llmSessionsCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show")
	llmPruneCmd.Flags().Int("keep", 1000, "Number of most recent events to keep")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmSessionsCmd)
	llmCmd.AddCommand(llmPruneCmd)
}
