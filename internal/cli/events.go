package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/internal/observability"
)

var (
	eventsTypeFlag  string
	eventsLimitFlag int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent entries from the event log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized (events may be disabled)")
		}

		events, err := EventLog.Read(observability.EventFilter{
			Type:  eventsTypeFlag,
			Limit: eventsLimitFlag,
		})
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events recorded.")
			return nil
		}
		for _, e := range events {
			fmt.Fprintf(out, "%s  %-5s  %-18s %s%s\n",
				e.Time.Local().Format(time.DateTime), e.Level, e.Type, e.Message, formatEventData(e.Data))
		}
		return nil
	},
}

func formatEventData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return " (" + strings.Join(parts, " ") + ")"
}

func init() {
	eventsCmd.Flags().StringVar(&eventsTypeFlag, "type", "", "only show events of this type (e.g. task.added)")
	eventsCmd.Flags().IntVarP(&eventsLimitFlag, "limit", "n", 20, "show at most this many recent events (0 for all)")
	rootCmd.AddCommand(eventsCmd)
}
