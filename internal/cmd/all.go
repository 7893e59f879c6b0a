package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chefscore/testctl/internal/dispatch"
	"github.com/chefscore/testctl/internal/logger"
	"github.com/chefscore/testctl/internal/plan"
	"github.com/chefscore/testctl/internal/report"
	"github.com/chefscore/testctl/internal/runner"
)

// NewAllCommand creates the all command
func NewAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run the JavaScript and Python test suites in sequence",
		Long: `Run both test suites one after the other and print a combined summary.
The overall result is a pass only when every executed suite passed.

Examples:
  testctl all                  # JavaScript tests, then Python tests
  testctl all --js-only        # JavaScript tests only
  testctl all --python-only    # Python tests only
  testctl all --coverage       # forward coverage to both suites
  testctl all --html-report    # write an HTML summary report`,
		Args: cobra.NoArgs,
		RunE: runAllCommand,
	}

	cmd.Flags().Bool("js-only", false, "Run only JavaScript tests")
	cmd.Flags().Bool("python-only", false, "Run only Python tests")
	cmd.Flags().Bool("coverage", false, "Generate coverage reports")
	cmd.Flags().Bool("verbose", false, "Show detailed test output")
	cmd.Flags().Bool("html-report", false, "Generate an HTML test report")
	cmd.Flags().String("report-path", "", "HTML report output path (default from config)")
	addCommonFlags(cmd)

	return cmd
}

// dispatchNames resolves the --js-only/--python-only pair into the list of
// runners to execute, in order.
func dispatchNames(jsOnly, pythonOnly bool) ([]string, error) {
	if jsOnly && pythonOnly {
		return nil, fmt.Errorf("%w: --js-only and --python-only are mutually exclusive, pick one",
			plan.ErrConflictingOptions)
	}
	switch {
	case jsOnly:
		return []string{"javascript"}, nil
	case pythonOnly:
		return []string{"python"}, nil
	default:
		return []string{"javascript", "python"}, nil
	}
}

func runAllCommand(cmd *cobra.Command, _ []string) error {
	jsOnly, _ := cmd.Flags().GetBool("js-only")
	pythonOnly, _ := cmd.Flags().GetBool("python-only")
	coverage, _ := cmd.Flags().GetBool("coverage")
	verbose, _ := cmd.Flags().GetBool("verbose")
	htmlReport, _ := cmd.Flags().GetBool("html-report")

	names, err := dispatchNames(jsOnly, pythonOnly)
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

	log.Header("ChefScore Analytics Dashboard - Combined Test Runner")

	jsPlan := plan.Plan{Category: plan.CategoryAll, Coverage: coverage, Verbose: verbose}
	pyPlan := plan.Plan{Category: plan.CategoryAll, Coverage: coverage, Verbose: verbose, HTMLReport: htmlReport}

	d := dispatch.New(log)
	d.Register("javascript", func(ctx context.Context) bool {
		return runJSSuite(ctx, cfg, log, probe, stream, jsPlan)
	})
	d.Register("python", func(ctx context.Context) bool {
		return runPySuite(ctx, cfg, log, probe, stream, pyPlan)
	})

	startedAt := time.Now()
	results, ok := d.Run(cmd.Context(), names)

	if htmlReport {
		summary := report.Summary{
			Results:   results,
			Elapsed:   time.Since(startedAt),
			StartedAt: startedAt,
		}
		if err := report.WriteHTML(cfg.ReportPath(), summary); err != nil {
			log.Warnf("Failed to write HTML report: %v", err)
		} else {
			log.Infof("HTML report written to %s", cfg.ReportPath())
		}
	}

	if !ok {
		return fmt.Errorf("some test suites failed")
	}
	return nil
}
