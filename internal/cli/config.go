package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/internal/core"
	"gopkg.in/yaml.v3"
)

// ConfigMgr is set during app initialization in app.go.
var ConfigMgr core.ConfigurationManager

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil {
			return fmt.Errorf("configuration not loaded")
		}
		data, err := yaml.Marshal(Config)
		if err != nil {
			return fmt.Errorf("formatting config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# base path: %s\n%s", BasePath, data)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for invalid values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}
		cfg, err := ConfigMgr.LoadGlobalConfig()
		if err != nil {
			return err
		}
		if err := ConfigMgr.ValidateConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
