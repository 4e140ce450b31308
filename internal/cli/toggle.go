package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <n>...",
	Aliases: []string{"done"},
	Short:   "Toggle completion of tasks by their listing number",
	Long: `Toggle the tasks numbered n in "today list" output. Numbers refer to
the listing under the same --filter, so "today toggle --filter pending 2"
toggles the second pending task wherever it sits in the full list.

All numbers are resolved against the listing before anything is toggled.
Numbers with no task are reported and skipped.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeTaskPositions,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := newView()
		if err != nil {
			return err
		}

		positions := make([]int, 0, len(args))
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid task number %q", arg)
			}
			positions = append(positions, n)
		}

		var ids []string
		seen := make(map[string]bool)
		for _, n := range positions {
			t, ok := view.VisibleAt(n - 1)
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no task at position %d in the %s listing\n", n, view.Filter())
				continue
			}
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			ids = append(ids, t.ID)
		}

		out := cmd.OutOrStdout()
		for _, id := range ids {
			if !view.OnToggleID(id) {
				continue
			}
			t, _ := TaskStore.Get(id)
			state := "pending"
			if t.Done {
				state = "completed"
			}
			fmt.Fprintf(out, "%s %s (%s)\n", checkbox(t.Done), t.Text, state)
		}
		if len(ids) > 0 {
			flushSaves(cmd)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
