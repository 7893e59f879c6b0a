// Package plan resolves raw command-line flags into an immutable invocation
// plan shared by all runners.
package plan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflictingOptions indicates more than one test-category flag was set.
var ErrConflictingOptions = errors.New("conflicting options")

// Category identifies which slice of the test suite to run.
type Category string

const (
	CategoryUnit        Category = "unit"
	CategoryIntegration Category = "integration"
	CategoryE2E         Category = "e2e"
	CategoryValidation  Category = "validation"
	CategoryAll         Category = "all"
)

// Plan is the normalized result of flag resolution. It is created once per
// invocation and never mutated afterwards.
type Plan struct {
	Category      Category
	Coverage      bool
	Watch         bool
	Verbose       bool
	HTMLReport    bool
	SetupOnly     bool
	CheckOnly     bool
	ForceNodeOnly bool
}

// Flags holds the raw boolean flag values as parsed from the command line.
// Category flags are mutually exclusive; modifier flags are independent.
type Flags struct {
	Unit        bool
	Integration bool
	E2E         bool
	Validation  bool
	All         bool

	Coverage      bool
	Watch         bool
	Verbose       bool
	HTMLReport    bool
	Setup         bool
	Check         bool
	ForceNodeOnly bool
}

// Resolve validates the category flags and produces a Plan. Selecting more
// than one category fails with ErrConflictingOptions naming the flags in
// conflict. No category selected defaults to CategoryAll.
func Resolve(f Flags) (Plan, error) {
	var selected []string
	category := CategoryAll

	pick := func(set bool, flag string, cat Category) {
		if set {
			selected = append(selected, "--"+flag)
			category = cat
		}
	}
	pick(f.Unit, "unit", CategoryUnit)
	pick(f.Integration, "integration", CategoryIntegration)
	pick(f.E2E, "e2e", CategoryE2E)
	pick(f.Validation, "validation", CategoryValidation)
	pick(f.All, "all", CategoryAll)

	if len(selected) > 1 {
		return Plan{}, fmt.Errorf("%w: %s are mutually exclusive, pick one",
			ErrConflictingOptions, strings.Join(selected, " and "))
	}

	return Plan{
		Category:      category,
		Coverage:      f.Coverage,
		Watch:         f.Watch,
		Verbose:       f.Verbose,
		HTMLReport:    f.HTMLReport,
		SetupOnly:     f.Setup,
		CheckOnly:     f.Check,
		ForceNodeOnly: f.ForceNodeOnly,
	}, nil
}
