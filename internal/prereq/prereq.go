// Package prereq verifies that the external tools a runner needs are present
// on the host, by probing each with its version argument. Tools with a known
// installer get a single install attempt when missing; everything else is
// reported with guidance and left to the user.
package prereq

import (
	"context"
	"strings"

	"github.com/chefscore/testctl/internal/logger"
	"github.com/chefscore/testctl/internal/runner"
)

// Check describes one required external tool.
type Check struct {
	Binary      string
	VersionArgs []string
	Guidance    []string // printed when the tool is missing
	Install     []string // optional one-shot install command; empty = not installable
}

// Node returns the checks for the JavaScript toolchain.
func Node(nodeBin, npmBin string) []Check {
	return []Check{
		{
			Binary:      nodeBin,
			VersionArgs: []string{"--version"},
			Guidance:    []string{"Please install Node.js from https://nodejs.org/"},
		},
		{
			Binary:      npmBin,
			VersionArgs: []string{"--version"},
			Guidance: []string{
				"npm should be included with Node.js installation.",
				"Try reinstalling Node.js or adding npm to your PATH.",
			},
		},
	}
}

// Pytest returns the check for the Python test framework, installable via pip.
func Pytest(pytestBin, pipBin string) []Check {
	return []Check{
		{
			Binary:      pytestBin,
			VersionArgs: []string{"--version"},
			Guidance:    []string{"pytest was not found on the PATH."},
			Install:     []string{pipBin, "install", "pytest", "pytest-cov", "pytest-html"},
		},
	}
}

// Verify probes every check independently and reports each result. A missing
// tool with an installer gets exactly one install attempt; its outcome
// replaces the probe result. The returned boolean is the AND across all
// checks, so one missing tool never hides the status of the others.
func Verify(ctx context.Context, r runner.CommandRunner, log *logger.Console, checks []Check) bool {
	ok := true
	for _, c := range checks {
		if !verifyOne(ctx, r, log, c) {
			ok = false
		}
	}
	return ok
}

func verifyOne(ctx context.Context, r runner.CommandRunner, log *logger.Console, c Check) bool {
	out, err := r.Run(ctx, c.Binary, c.VersionArgs...)
	if err == nil {
		log.Successf("✓ %s is installed: %s", c.Binary, firstLine(out))
		return true
	}

	log.Failf("✗ %s is not installed or not in the PATH", c.Binary)
	for _, line := range c.Guidance {
		log.Warnf("%s", line)
	}

	if len(c.Install) == 0 {
		return false
	}

	log.Warnf("Installing %s...", c.Binary)
	installOut, installErr := r.Run(ctx, c.Install[0], c.Install[1:]...)
	if installErr != nil {
		log.Failf("Failed to install %s:", c.Binary)
		if trimmed := strings.TrimSpace(installOut); trimmed != "" {
			log.Failf("%s", trimmed)
		}
		return false
	}

	log.Successf("%s installed successfully.", c.Binary)
	return true
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
