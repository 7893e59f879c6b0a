package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefscore/testctl/internal/plan"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "testctl", cmd.Use)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "js")
	assert.Contains(t, names, "py")
	assert.Contains(t, names, "all")
	assert.Contains(t, names, "history")
}

func executeCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestJSConflictingCategoriesFailBeforeAnything(t *testing.T) {
	err := executeCommand(t, "js", "--unit", "--e2e")

	require.Error(t, err)
	assert.True(t, errors.Is(err, plan.ErrConflictingOptions))
}

func TestPyConflictingCategoriesFail(t *testing.T) {
	err := executeCommand(t, "py", "--unit", "--validation")

	require.Error(t, err)
	assert.True(t, errors.Is(err, plan.ErrConflictingOptions))
}

func TestAllConflictingOnlyFlagsFail(t *testing.T) {
	err := executeCommand(t, "all", "--js-only", "--python-only")

	require.Error(t, err)
	assert.True(t, errors.Is(err, plan.ErrConflictingOptions))
}

func TestDispatchNames(t *testing.T) {
	names, err := dispatchNames(false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"javascript", "python"}, names)

	names, err = dispatchNames(true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"javascript"}, names)

	names, err = dispatchNames(false, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, names)

	_, err = dispatchNames(true, true)
	assert.Error(t, err)
}
