// Package command builds the exact external command lines for the JavaScript
// and Python test suites from an invocation plan.
//
// The JavaScript builder is dual-path: when npm is available the suite runs
// through npm's named scripts and modifier flags are forwarded to Jest after
// the "--" separator; when npm is unavailable the Jest binary is invoked
// directly with explicit test-selection globs and no separator.
package command

import (
	"path/filepath"
	"runtime"

	"github.com/chefscore/testctl/internal/plan"
)

// argSeparator is the token npm uses to forward trailing arguments to the
// underlying script unmodified. It must never appear on the direct path.
const argSeparator = "--"

// JSOptions configures the JavaScript command builder.
type JSOptions struct {
	ProjectDir   string
	NPMBin       string // npm executable, usually "npm"
	NPMAvailable bool   // false selects the direct Jest invocation
}

// JestBinary returns the path of the Jest executable inside the project's
// dependency cache.
func JestBinary(projectDir string) string {
	name := "jest"
	if runtime.GOOS == "windows" {
		name = "jest.cmd"
	}
	return filepath.Join(projectDir, "node_modules", ".bin", name)
}

// JS builds the JavaScript test invocation for the given plan.
func JS(p plan.Plan, opts JSOptions) []string {
	if opts.NPMAvailable {
		return jsViaNPM(p, opts)
	}
	return jsDirect(p, opts)
}

func jsViaNPM(p plan.Plan, opts JSOptions) []string {
	npm := opts.NPMBin
	if npm == "" {
		npm = "npm"
	}

	var argv []string
	switch {
	case p.Category != plan.CategoryAll:
		argv = []string{npm, "run", "test:" + string(p.Category)}
	case p.Coverage:
		argv = []string{npm, "run", "test:coverage"}
	default:
		argv = []string{npm, "test"}
	}

	var extra []string
	if p.Watch {
		extra = append(extra, "--watch")
	}
	if p.Verbose {
		extra = append(extra, "--verbose")
	}
	if len(extra) > 0 {
		argv = append(argv, argSeparator)
		argv = append(argv, extra...)
	}
	return argv
}

func jsDirect(p plan.Plan, opts JSOptions) []string {
	argv := []string{JestBinary(opts.ProjectDir)}

	switch p.Category {
	case plan.CategoryUnit, plan.CategoryIntegration, plan.CategoryE2E:
		argv = append(argv, "**/tests/"+string(p.Category)+"/**/*.test.js")
	}

	if p.Coverage {
		argv = append(argv, "--coverage")
	}
	if p.Watch {
		argv = append(argv, "--watch")
	}
	if p.Verbose {
		argv = append(argv, "--verbose")
	}
	return argv
}

// PytestOptions configures the Python command builder.
type PytestOptions struct {
	ProjectDir string
	PytestBin  string // pytest executable, usually "pytest"
}

// Pytest builds the Python test invocation for the given plan. The suite
// lives under tests/python with one subdirectory per category.
func Pytest(p plan.Plan, opts PytestOptions) []string {
	bin := opts.PytestBin
	if bin == "" {
		bin = "pytest"
	}

	testPath := filepath.Join(opts.ProjectDir, "tests", "python")
	if p.Category != plan.CategoryAll {
		testPath = filepath.Join(testPath, string(p.Category))
	}

	argv := []string{bin, testPath}
	if p.Verbose {
		argv = append(argv, "-v")
	}
	if p.Coverage {
		argv = append(argv, "--cov=scripts", "--cov-report=term", "--cov-report=xml:coverage.xml")
	}
	if p.HTMLReport {
		argv = append(argv, "--html=test_report.html")
	}
	return argv
}
