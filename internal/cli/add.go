package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task to the end of the list",
	Long: `Add a pending task. All arguments are joined with spaces to form the
task text. Text that is blank after trimming is ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		task, ok := TaskStore.Add(strings.Join(args, " "))
		if !ok {
			return nil
		}
		flushSaves(cmd)

		c := TaskStore.Counts()
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d pending, %d total)\n", task.Text, c.Pending, c.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
