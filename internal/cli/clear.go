package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// clearYesFlag skips the confirmation prompt.
var clearYesFlag bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every task",
	Long: `Remove all tasks from the list, completed or not. Asks for
confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		n := TaskStore.Len()
		if !clearYesFlag && n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Clear all %d task(s)? [y/N] ", n)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		TaskStore.ClearAll()
		flushSaves(cmd)
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d task(s).\n", n)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYesFlag, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(clearCmd)
}
