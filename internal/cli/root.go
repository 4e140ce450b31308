package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/internal/core"
	"github.com/valter-silva-au/today/pkg/models"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// flushTimeout bounds how long a one-shot command waits for its save.
const flushTimeout = 5 * time.Second

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// filterFlag holds the persistent --filter value.
var filterFlag string

var rootCmd = &cobra.Command{
	Use:   "today",
	Short: "today - a single-screen to-do list",
	Long: `today keeps one list of tasks for the day. Add tasks, tick them off,
filter by status and clear the list when you are done.

Run without a subcommand to open the interactive screen. The list is
saved to local storage after every change.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return uiCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "today %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&filterFlag, "filter", "", "show only all, completed or pending tasks")
	_ = rootCmd.RegisterFlagCompletionFunc("filter", completeFilters)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// activeFilter resolves --filter, falling back to ui.default_filter.
func activeFilter() (models.Filter, error) {
	raw := filterFlag
	if raw == "" && Config != nil {
		raw = Config.UI.DefaultFilter
	}
	return models.ParseFilter(raw)
}

// newView builds a view over the shared store with the active filter.
func newView() (*core.ViewController, error) {
	if TaskStore == nil {
		return nil, fmt.Errorf("task store not initialized")
	}
	f, err := activeFilter()
	if err != nil {
		return nil, err
	}
	return core.NewViewController(TaskStore, f), nil
}

// flushSaves waits for the background save of a one-shot command so the
// change is on disk before the process exits.
func flushSaves(cmd *cobra.Command) {
	if Persister == nil {
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := Persister.Flush(ctx); err != nil && Logger != nil {
		Logger.Warn("saving tasks did not finish", "err", err)
	}
}
