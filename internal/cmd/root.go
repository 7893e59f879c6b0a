package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chefscore/testctl/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for testctl
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testctl",
		Short: "Unified test runner for the ChefScore Analytics Dashboard",
		Long: `Testctl wraps the project's external test suites behind one interface:
the JavaScript suite (Jest, invoked through npm or directly) and the
Python suite (pytest).

Each runner checks its prerequisites, installs missing dependencies once,
streams the suite's output live, and maps the result to a process exit code
that CI can branch on.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewJSCommand())
	cmd.AddCommand(NewPyCommand())
	cmd.AddCommand(NewAllCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// addCommonFlags registers the flags shared by every runner subcommand.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .testctl/config.yaml)")
	cmd.Flags().String("project", "", "Project directory containing the test suites")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
}

// loadMergedConfig loads configuration and applies the common flag overrides,
// flags taking precedence over the file.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var projectPtr *string
	if cmd.Flags().Changed("project") {
		v, _ := cmd.Flags().GetString("project")
		projectPtr = &v
	}

	var noHistoryPtr *bool
	if cmd.Flags().Changed("no-history") {
		v, _ := cmd.Flags().GetBool("no-history")
		noHistoryPtr = &v
	}

	var reportPtr *string
	if cmd.Flags().Lookup("report-path") != nil && cmd.Flags().Changed("report-path") {
		v, _ := cmd.Flags().GetString("report-path")
		reportPtr = &v
	}

	cfg.MergeWithFlags(projectPtr, noHistoryPtr, reportPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
