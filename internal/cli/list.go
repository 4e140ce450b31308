package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/pkg/models"
)

// listOutputFlag holds the --output value for "list".
var listOutputFlag string

// taskListing is the structured form of "list" output.
type taskListing struct {
	Filter models.Filter     `json:"filter" yaml:"filter" toml:"filter"`
	Counts models.TaskCounts `json:"counts" yaml:"counts" toml:"counts"`
	Tasks  []models.Task     `json:"tasks" yaml:"tasks" toml:"tasks"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks through the active filter",
	Long: `List tasks in insertion order, numbered by their position in the
filtered listing. Those numbers are what "today toggle" accepts when run
with the same --filter.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutputFormat(listOutputFlag); err != nil {
			return err
		}
		view, err := newView()
		if err != nil {
			return err
		}

		listing := taskListing{
			Filter: view.Filter(),
			Counts: TaskStore.Counts(),
			Tasks:  view.Visible(),
		}
		if !strings.EqualFold(listOutputFlag, outputText) {
			return writeStructured(cmd.OutOrStdout(), listOutputFlag, listing)
		}
		printListing(cmd.OutOrStdout(), listing)
		return nil
	},
}

func printListing(w io.Writer, l taskListing) {
	title := "Today's tasks"
	if Config != nil && Config.UI.Title != "" {
		title = Config.UI.Title
	}
	fmt.Fprintf(w, "%s (%s)\n", title, l.Filter.Label())

	if len(l.Tasks) == 0 {
		fmt.Fprintln(w, "  No tasks.")
	}
	for i, t := range l.Tasks {
		fmt.Fprintf(w, "  %2d. %s %s\n", i+1, checkbox(t.Done), t.Text)
	}
	fmt.Fprintf(w, "\n  %d pending, %d completed, %d total\n", l.Counts.Pending, l.Counts.Completed, l.Counts.Total)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFlag, "output", "o", outputText, "output format: text, json, yaml or toml")
	_ = listCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	rootCmd.AddCommand(listCmd)
}
