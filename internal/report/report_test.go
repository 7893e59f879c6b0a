package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary(results map[string]bool) Summary {
	return Summary{
		Results:   results,
		Elapsed:   42500 * time.Millisecond,
		StartedAt: time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
	}
}

func TestMarkdownAllPassed(t *testing.T) {
	md := Markdown(sampleSummary(map[string]bool{"javascript": true, "python": true}))

	assert.Contains(t, md, "# ChefScore Analytics Dashboard - Test Report")
	assert.Contains(t, md, "| javascript | PASSED |")
	assert.Contains(t, md, "| python | PASSED |")
	assert.Contains(t, md, "Time elapsed: 42.50 seconds")
	assert.Contains(t, md, "**All tests passed.**")
}

func TestMarkdownWithFailure(t *testing.T) {
	md := Markdown(sampleSummary(map[string]bool{"javascript": false, "python": true}))

	assert.Contains(t, md, "| javascript | FAILED |")
	assert.Contains(t, md, "**Some tests failed.**")
}

func TestMarkdownRowOrderIsStable(t *testing.T) {
	md := Markdown(sampleSummary(map[string]bool{"python": true, "javascript": true}))

	jsIdx := strings.Index(md, "| javascript |")
	pyIdx := strings.Index(md, "| python |")
	require.Greater(t, jsIdx, 0)
	require.Greater(t, pyIdx, 0)
	assert.Less(t, jsIdx, pyIdx, "rows should be sorted by name")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report", "test_report.html")

	err := WriteHTML(path, sampleSummary(map[string]bool{"javascript": true}))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>javascript</td>")
	assert.Contains(t, html, "PASSED")
	assert.NotContains(t, html, "|---")
}
