package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsToAll(t *testing.T) {
	p, err := Resolve(Flags{})
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, p.Category)
	assert.False(t, p.Coverage)
	assert.False(t, p.SetupOnly)
}

func TestResolveSingleCategory(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Category
	}{
		{"unit", Flags{Unit: true}, CategoryUnit},
		{"integration", Flags{Integration: true}, CategoryIntegration},
		{"e2e", Flags{E2E: true}, CategoryE2E},
		{"validation", Flags{Validation: true}, CategoryValidation},
		{"all explicit", Flags{All: true}, CategoryAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Category)
		})
	}
}

func TestResolveConflictingCategories(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
	}{
		{"unit+integration", Flags{Unit: true, Integration: true}},
		{"unit+e2e", Flags{Unit: true, E2E: true}},
		{"e2e+all", Flags{E2E: true, All: true}},
		{"validation+unit", Flags{Validation: true, Unit: true}},
		{"three at once", Flags{Unit: true, Integration: true, E2E: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.flags)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConflictingOptions))
		})
	}
}

func TestResolveConflictErrorNamesFlags(t *testing.T) {
	_, err := Resolve(Flags{Unit: true, E2E: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--unit")
	assert.Contains(t, err.Error(), "--e2e")
}

func TestResolveModifiersAreIndependent(t *testing.T) {
	p, err := Resolve(Flags{
		Unit:          true,
		Coverage:      true,
		Watch:         true,
		Verbose:       true,
		HTMLReport:    true,
		Setup:         true,
		Check:         true,
		ForceNodeOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, CategoryUnit, p.Category)
	assert.True(t, p.Coverage)
	assert.True(t, p.Watch)
	assert.True(t, p.Verbose)
	assert.True(t, p.HTMLReport)
	assert.True(t, p.SetupOnly)
	assert.True(t, p.CheckOnly)
	assert.True(t, p.ForceNodeOnly)
}
