package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chefscore/testctl/internal/logger"
	"github.com/chefscore/testctl/internal/plan"
	"github.com/chefscore/testctl/internal/runner"
)

// NewJSCommand creates the js command
func NewJSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "js",
		Short: "Run the JavaScript (Jest) test suite",
		Long: `Run the project's JavaScript tests through npm, or directly via the
Jest binary when npm is unavailable and --force-node-only is set.

Category flags are mutually exclusive; with none given the whole suite runs.

Examples:
  testctl js                    # run all JavaScript tests
  testctl js --unit             # npm run test:unit
  testctl js --coverage         # npm run test:coverage
  testctl js --unit --watch     # forward --watch to Jest through npm
  testctl js --check            # verify dependencies only
  testctl js --setup            # set up the test environment only`,
		Args: cobra.NoArgs,
		RunE: runJSCommand,
	}

	cmd.Flags().Bool("unit", false, "Run only unit tests")
	cmd.Flags().Bool("integration", false, "Run only integration tests")
	cmd.Flags().Bool("e2e", false, "Run only end-to-end tests")
	cmd.Flags().Bool("all", false, "Run all tests (default)")
	cmd.Flags().Bool("coverage", false, "Generate coverage report")
	cmd.Flags().Bool("watch", false, "Run tests in watch mode")
	cmd.Flags().Bool("verbose", false, "Show detailed test output")
	cmd.Flags().Bool("setup", false, "Only check and set up dependencies, don't run tests")
	cmd.Flags().Bool("check", false, "Only check dependencies, don't run tests")
	cmd.Flags().Bool("force-node-only", false, "Continue without npm and invoke Jest directly")
	addCommonFlags(cmd)

	return cmd
}

// jsFlags reads the js command's flag set into plan.Flags.
func jsFlags(cmd *cobra.Command) plan.Flags {
	get := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return plan.Flags{
		Unit:          get("unit"),
		Integration:   get("integration"),
		E2E:           get("e2e"),
		All:           get("all"),
		Coverage:      get("coverage"),
		Watch:         get("watch"),
		Verbose:       get("verbose"),
		Setup:         get("setup"),
		Check:         get("check"),
		ForceNodeOnly: get("force-node-only"),
	}
}

func runJSCommand(cmd *cobra.Command, _ []string) error {
	p, err := plan.Resolve(jsFlags(cmd))
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

	if !runJSSuite(cmd.Context(), cfg, log, probe, stream, p) {
		return fmt.Errorf("javascript tests failed")
	}
	return nil
}
