package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/web"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect model usage of a running server",
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated model token usage and estimated cost",
	Long: "Fetch usage from a running \"knav serve\". The request log lives in the " +
		"server's memory, so stats cover the server's current lifetime only.",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")

		stats, err := fetchStats(cmd, server)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func fetchStats(cmd *cobra.Command, server string) (*web.LLMStats, error) {
	url := strings.TrimRight(server, "/") + "/api/v1/llm/stats"
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch stats: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var stats web.LLMStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

func printStats(w io.Writer, stats *web.LLMStats) {
	if stats.Available {
		fmt.Fprintf(w, "Model: %s\n\n", stats.Model)
	} else {
		fmt.Fprintf(w, "Model: not available\n\n")
	}

	if len(stats.ByPurpose) == 0 {
		fmt.Fprintln(w, "No model usage recorded yet.")
		return
	}

	// Usage by purpose.
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	var totalCalls, totalFailed, totalIn, totalOut int
	for _, st := range stats.ByPurpose {
		total := st.InputTokens + st.OutputTokens
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			truncate(st.Purpose, 16), st.Calls, st.Failures, st.InputTokens, st.OutputTokens, total, st.AvgLatencyMs)
		totalCalls += st.Calls
		totalFailed += st.Failures
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalFailed, totalIn, totalOut, totalIn+totalOut)

	if len(stats.ByModel) == 0 {
		return
	}

	// Cost by model.
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var unknownModels []string
	for _, mu := range stats.ByModel {
		cost := "?"
		if mu.CostUSD != nil {
			cost = formatCost(*mu.CostUSD)
		} else {
			unknownModels = append(unknownModels, mu.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}

	fmt.Fprintln(w, strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		label, "", "", "", formatCost(stats.TotalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
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
	llmStatsCmd.Flags().String("server", "http://localhost:8080", "Base URL of a running knav server")

	llmCmd.AddCommand(llmStatsCmd)
}
