package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/internal/observability"
	"github.com/valter-silva-au/today/pkg/models"
)

var (
	statsOutput string
	statsSince  string
)

// statsReport is the structured form of "stats" output.
type statsReport struct {
	Since    time.Time              `json:"since" yaml:"since" toml:"since"`
	Current  models.TaskCounts      `json:"current" yaml:"current" toml:"current"`
	Activity *observability.Metrics `json:"activity,omitempty" yaml:"activity,omitempty" toml:"activity,omitempty"`
	Alerts   []observability.Alert  `json:"alerts,omitempty" yaml:"alerts,omitempty" toml:"alerts,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show current counts and recent activity",
	Long: `Show how many tasks are pending and completed now, plus activity
counts derived from the event log (tasks added, completed, reopened,
cleared, and persistence failures) and any alerts: recent save or load
failures and an oversized pending backlog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}
		if err := validateOutputFormat(statsOutput); err != nil {
			return err
		}

		sinceTime, err := parseSinceDuration(statsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		report := statsReport{Since: sinceTime, Current: TaskStore.Counts()}
		if MetricsCalc != nil {
			metrics, err := MetricsCalc.Calculate(sinceTime)
			if err != nil {
				return fmt.Errorf("calculating metrics: %w", err)
			}
			report.Activity = metrics
		}
		if AlertEngine != nil {
			alerts, err := AlertEngine.Evaluate(report.Current)
			if err != nil {
				return fmt.Errorf("evaluating alerts: %w", err)
			}
			report.Alerts = alerts
		}

		if !strings.EqualFold(statsOutput, outputText) {
			return writeStructured(cmd.OutOrStdout(), statsOutput, report)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current list")
		fmt.Fprintf(out, "  %-24s %d\n", "Pending:", report.Current.Pending)
		fmt.Fprintf(out, "  %-24s %d\n", "Completed:", report.Current.Completed)
		fmt.Fprintf(out, "  %-24s %d\n", "Total:", report.Current.Total)

		m := report.Activity
		if m == nil {
			fmt.Fprintln(out, "\nActivity unavailable (event log disabled).")
			printAlerts(out, report.Alerts)
			return nil
		}
		fmt.Fprintf(out, "\nActivity (since %s)\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-24s %d\n", "Events recorded:", m.EventCount)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks added:", m.TasksAdded)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks completed:", m.TasksCompleted)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks reopened:", m.TasksReopened)
		fmt.Fprintf(out, "  %-24s %d (%d tasks)\n", "Clears:", m.Clears, m.TasksCleared)
		if m.PersistFailures > 0 || m.LoadFailures > 0 {
			fmt.Fprintf(out, "  %-24s %d\n", "Save failures:", m.PersistFailures)
			fmt.Fprintf(out, "  %-24s %d\n", "Load failures:", m.LoadFailures)
		}
		if m.NewestEvent != nil {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Last activity:", m.NewestEvent.Format(time.RFC3339))
		}
		printAlerts(out, report.Alerts)
		return nil
	},
}

func printAlerts(out io.Writer, alerts []observability.Alert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintln(out, "\nAlerts")
	for _, a := range alerts {
		fmt.Fprintf(out, "  [%s] %s\n", strings.ToUpper(string(a.Severity)), a.Message)
	}
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", outputText, "output format: text, json, yaml or toml")
	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "time window for activity (e.g. 7d, 30d, 24h)")
	_ = statsCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	rootCmd.AddCommand(statsCmd)
}
