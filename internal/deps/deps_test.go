package deps

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefscore/testctl/internal/command"
	"github.com/chefscore/testctl/internal/logger"
)

type fakeRunner struct {
	failing map[string]bool
	calls   []string
	// onCall lets a test simulate install side effects (creating dirs).
	onCall func(key string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if f.onCall != nil {
		f.onCall(key)
	}
	if f.failing[key] {
		return "npm ERR! network timeout", errors.New("exit status 1")
	}
	return "", nil
}

func setupProject(t *testing.T, withManifest, withNodeModules, withJest bool) string {
	t.Helper()
	dir := t.TempDir()
	if withManifest {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"x"}`), 0o644))
	}
	if withNodeModules {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", ".bin"), 0o755))
	}
	if withJest {
		require.NoError(t, os.WriteFile(command.JestBinary(dir), []byte("#!/bin/sh\n"), 0o755))
	}
	return dir
}

func testConsole() (*logger.Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewPlain(&buf), &buf
}

func TestEnsureJSMissingManifestFailsFast(t *testing.T) {
	dir := setupProject(t, false, true, true)
	r := &fakeRunner{}
	log, buf := testConsole()

	ok := EnsureJS(context.Background(), r, log, JSOptions{ProjectDir: dir, NPMAvailable: true})

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "package.json not found")
	// Fatal precondition: no install command was attempted.
	assert.Empty(t, r.calls)
}

func TestEnsureJSEverythingPresent(t *testing.T) {
	dir := setupProject(t, true, true, true)
	r := &fakeRunner{}
	log, buf := testConsole()

	ok := EnsureJS(context.Background(), r, log, JSOptions{ProjectDir: dir, NPMAvailable: true})

	assert.True(t, ok)
	assert.Empty(t, r.calls)
	assert.Contains(t, buf.String(), "node_modules directory found")
	assert.Contains(t, buf.String(), "Jest found in node_modules")
}

func TestEnsureJSInstallsNodeModulesOnce(t *testing.T) {
	dir := setupProject(t, true, false, false)
	r := &fakeRunner{
		onCall: func(key string) {
			if key == "npm install" {
				os.MkdirAll(filepath.Join(dir, "node_modules", ".bin"), 0o755)
				os.WriteFile(command.JestBinary(dir), []byte(""), 0o755)
			}
		},
	}
	log, _ := testConsole()

	ok := EnsureJS(context.Background(), r, log, JSOptions{ProjectDir: dir, NPMBin: "npm", NPMAvailable: true})

	assert.True(t, ok)
	assert.Equal(t, []string{"npm install"}, r.calls)
}

func TestEnsureJSInstallFailureShortCircuits(t *testing.T) {
	dir := setupProject(t, true, false, false)
	r := &fakeRunner{failing: map[string]bool{"npm install": true}}
	log, buf := testConsole()

	ok := EnsureJS(context.Background(), r, log, JSOptions{ProjectDir: dir, NPMBin: "npm", NPMAvailable: true})

	assert.False(t, ok)
	// One attempt, no retry, no jest install afterwards.
	assert.Equal(t, []string{"npm install"}, r.calls)
	assert.Contains(t, buf.String(), "network timeout")
}

func TestEnsureJSInstallsJestWhenMissing(t *testing.T) {
	dir := setupProject(t, true, true, false)
	r := &fakeRunner{}
	log, _ := testConsole()

	ok := EnsureJS(context.Background(), r, log, JSOptions{ProjectDir: dir, NPMBin: "npm", NPMAvailable: true})

	assert.True(t, ok)
	require.Len(t, r.calls, 1)
	assert.Equal(t, "npm install --save-dev jest jest-environment-jsdom @testing-library/jest-dom", r.calls[0])
}

func TestEnsureJSNodeOnlyModeCannotInstall(t *testing.T) {
	dir := setupProject(t, true, false, false)
	r := &fakeRunner{}
	log, buf := testConsole()

	ok := EnsureJS(context.Background(), r, log, JSOptions{ProjectDir: dir, NPMAvailable: false})

	assert.False(t, ok)
	assert.Empty(t, r.calls)
	assert.Contains(t, buf.String(), "npm is unavailable")
}

func TestEnsurePythonLayoutCreatesTree(t *testing.T) {
	dir := t.TempDir()
	log, _ := testConsole()

	ok := EnsurePythonLayout(dir, log)
	require.True(t, ok)

	for _, category := range []string{"unit", "integration", "validation"} {
		base := filepath.Join(dir, "tests", "python", category)
		assert.FileExists(t, filepath.Join(base, "__init__.py"))
		assert.FileExists(t, filepath.Join(base, "test_sample_"+category+".py"))
	}

	data, err := os.ReadFile(filepath.Join(dir, "tests", "python", "unit", "test_sample_unit.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "def test_sample_unit():")
}

func TestEnsurePythonLayoutIdempotent(t *testing.T) {
	dir := t.TempDir()
	log, _ := testConsole()
	require.True(t, EnsurePythonLayout(dir, log))

	marker := filepath.Join(dir, "tests", "python", "unit", "custom_test.py")
	require.NoError(t, os.WriteFile(marker, []byte("# user file"), 0o644))

	log2, buf := testConsole()
	require.True(t, EnsurePythonLayout(dir, log2))

	assert.Contains(t, buf.String(), "already exist")
	assert.FileExists(t, marker)
}
