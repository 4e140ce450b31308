package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/pkg/models"
)

// completeFilters lists the values accepted by --filter.
func completeFilters(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(models.FilterAll) + "\tEvery task",
		string(models.FilterCompleted) + "\tTicked-off tasks",
		string(models.FilterPending) + "\tTasks still to do",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeOutputFormats lists the values accepted by --output.
func completeOutputFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{outputText, outputJSON, outputYAML, outputTOML}, cobra.ShellCompDirectiveNoFileComp
}

// completeTaskPositions lists 1-based positions in the active filtered
// listing, with the task text as the description. Positions already on the
// command line are skipped.
func completeTaskPositions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	view, err := newView()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	used := make(map[string]bool, len(args))
	for _, a := range args {
		used[a] = true
	}

	var out []string
	pos := 0
	for task := range view.VisibleTasks() {
		pos++
		n := strconv.Itoa(pos)
		if used[n] || !strings.HasPrefix(n, toComplete) {
			continue
		}
		out = append(out, n+"\t"+checkbox(task.Done)+" "+task.Text)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
