// Package dispatch composes independent test runners sequentially and
// aggregates their results into a summary table.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chefscore/testctl/internal/logger"
)

// ErrRunnerNotFound indicates a runner name was dispatched that no runner is
// registered under. It is recorded as a failure, never raised.
var ErrRunnerNotFound = errors.New("runner not found")

// RunnerFunc executes one complete test suite and reports success.
type RunnerFunc func(ctx context.Context) bool

// Dispatcher runs registered test runners strictly sequentially, never
// concurrently, and aggregates their pass/fail results.
type Dispatcher struct {
	log     *logger.Console
	runners map[string]RunnerFunc
	titler  cases.Caser
}

// New creates an empty Dispatcher reporting through log.
func New(log *logger.Console) *Dispatcher {
	return &Dispatcher{
		log:     log,
		runners: make(map[string]RunnerFunc),
		titler:  cases.Title(language.English),
	}
}

// Register adds a runner under the given name.
func (d *Dispatcher) Register(name string, fn RunnerFunc) {
	d.runners[name] = fn
}

// Run executes the named runners in order and prints the summary. A name
// with no registered runner is recorded as failed. The returned map holds
// one entry per dispatched name; the boolean is true only when every
// dispatched runner succeeded.
func (d *Dispatcher) Run(ctx context.Context, names []string) (map[string]bool, bool) {
	start := time.Now()
	results := make(map[string]bool, len(names))

	for _, name := range names {
		d.log.Section("Running " + d.titler.String(name) + " Tests")

		fn, ok := d.runners[name]
		if !ok {
			d.log.Failf("%s test runner is not available: %v",
				d.titler.String(name), fmt.Errorf("%w: %s", ErrRunnerNotFound, name))
			results[name] = false
			continue
		}
		results[name] = fn(ctx)
	}

	d.summarize(names, results, time.Since(start))

	allPassed := true
	for _, name := range names {
		allPassed = allPassed && results[name]
	}
	return results, allPassed
}

func (d *Dispatcher) summarize(names []string, results map[string]bool, elapsed time.Duration) {
	d.log.Header("Test Summary")
	d.log.Boldf("Time elapsed: %.2f seconds", elapsed.Seconds())
	d.log.Printf("")

	allPassed := true
	for _, name := range names {
		d.log.Statusf(d.titler.String(name)+" Tests", results[name])
		allPassed = allPassed && results[name]
	}

	d.log.Printf("")
	if allPassed {
		d.log.Successf("🎉 All tests passed successfully! 🎉")
	} else {
		d.log.Failf("❌ Some tests failed. Please check the output above for details.")
	}
}
