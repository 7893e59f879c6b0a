// Package deps ensures the on-disk dependencies of each test suite are in
// place before a run: the npm manifest, the node_modules cache, the Jest
// binary inside it, and the Python test tree. Missing installable pieces get
// exactly one install attempt; the manifest itself is a fatal precondition.
package deps

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/chefscore/testctl/internal/command"
	"github.com/chefscore/testctl/internal/filelock"
	"github.com/chefscore/testctl/internal/logger"
	"github.com/chefscore/testctl/internal/manifest"
	"github.com/chefscore/testctl/internal/runner"
)

// jestPackages are installed when Jest is missing from the dependency cache.
var jestPackages = []string{"jest", "jest-environment-jsdom", "@testing-library/jest-dom"}

// JSOptions configures the JavaScript dependency check.
type JSOptions struct {
	ProjectDir   string
	NPMBin       string
	NPMAvailable bool   // false (forced node-only mode) disables install attempts
	LockPath     string // install serialization lock; empty = <project>/.testctl/install.lock
}

// EnsureJS verifies the three JavaScript preconditions in order, stopping at
// the first failure: package.json exists, node_modules exists (one
// `npm install` if not), and the Jest binary exists inside node_modules (one
// targeted install if not).
func EnsureJS(ctx context.Context, r runner.CommandRunner, log *logger.Console, opts JSOptions) bool {
	if !manifest.Exists(opts.ProjectDir) {
		log.Failf("✗ package.json not found at %s", manifest.Path(opts.ProjectDir))
		return false
	}

	nodeModules := filepath.Join(opts.ProjectDir, "node_modules")
	if !dirExists(nodeModules) {
		log.Warnf("node_modules directory not found. Installing dependencies...")
		if !installOnce(ctx, r, log, opts, "Dependencies", "install") {
			return false
		}
	} else {
		log.Successf("✓ node_modules directory found.")
	}

	jestPath := command.JestBinary(opts.ProjectDir)
	if _, err := os.Stat(jestPath); err != nil {
		log.Warnf("Jest not found in node_modules. Installing testing dependencies...")
		args := append([]string{"install", "--save-dev"}, jestPackages...)
		if !installOnce(ctx, r, log, opts, "Jest", args...) {
			return false
		}
	} else {
		log.Successf("✓ Jest found in node_modules.")
	}

	return true
}

// installOnce runs a single npm install command under the install lock.
// There is no retry: a failed install fails the whole setup.
func installOnce(ctx context.Context, r runner.CommandRunner, log *logger.Console, opts JSOptions, what string, args ...string) bool {
	if !opts.NPMAvailable {
		log.Failf("✗ Cannot install %s: npm is unavailable", what)
		return false
	}

	npm := opts.NPMBin
	if npm == "" {
		npm = "npm"
	}

	lockPath := opts.LockPath
	if lockPath == "" {
		lockPath = filepath.Join(opts.ProjectDir, ".testctl", "install.lock")
	}
	lock := filelock.New(lockPath)
	if err := lock.Acquire(); err != nil {
		log.Failf("✗ %v", err)
		return false
	}
	defer lock.Release()

	out, err := r.Run(ctx, npm, args...)
	if err != nil {
		log.Failf("✗ Failed to install %s:", what)
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			log.Failf("%s", trimmed)
		}
		return false
	}

	log.Successf("✓ %s installed successfully.", what)
	return true
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
