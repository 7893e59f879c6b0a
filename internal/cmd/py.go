package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chefscore/testctl/internal/logger"
	"github.com/chefscore/testctl/internal/plan"
	"github.com/chefscore/testctl/internal/runner"
)

// NewPyCommand creates the py command
func NewPyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "py",
		Short: "Run the Python (pytest) test suite",
		Long: `Run the project's Python tests with pytest. Installs pytest via pip
once when missing, and scaffolds the tests/python directory tree with sample
tests on first use.

Examples:
  testctl py                  # run all Python tests
  testctl py --validation     # run only validation tests
  testctl py --coverage       # include coverage reporting
  testctl py --html           # write an HTML report via pytest-html
  testctl py --setup          # only set up test directories`,
		Args: cobra.NoArgs,
		RunE: runPyCommand,
	}

	cmd.Flags().Bool("unit", false, "Run only unit tests")
	cmd.Flags().Bool("integration", false, "Run only integration tests")
	cmd.Flags().Bool("validation", false, "Run only validation tests")
	cmd.Flags().Bool("all", false, "Run all tests (default)")
	cmd.Flags().Bool("coverage", false, "Generate coverage report")
	cmd.Flags().Bool("verbose", false, "Show detailed test output")
	cmd.Flags().Bool("html", false, "Generate HTML test report")
	cmd.Flags().Bool("setup", false, "Only set up test directories, don't run tests")
	addCommonFlags(cmd)

	return cmd
}

// pyFlags reads the py command's flag set into plan.Flags.
func pyFlags(cmd *cobra.Command) plan.Flags {
	get := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return plan.Flags{
		Unit:        get("unit"),
		Integration: get("integration"),
		Validation:  get("validation"),
		All:         get("all"),
		Coverage:    get("coverage"),
		Verbose:     get("verbose"),
		HTMLReport:  get("html"),
		Setup:       get("setup"),
	}
}

func runPyCommand(cmd *cobra.Command, _ []string) error {
	p, err := plan.Resolve(pyFlags(cmd))
	if err != nil {
		return err
	}

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.New(cmd.OutOrStdout())
	probe := runner.NewExecRunner(cfg.ProjectDir)
	stream := runner.NewStreamer(cfg.ProjectDir, log.Writer())

	if !runPySuite(cmd.Context(), cfg, log, probe, stream, p) {
		return fmt.Errorf("python tests failed")
	}
	return nil
}
