// Package report renders a run summary as an HTML file for --html-report.
// The summary is composed as Markdown and converted with goldmark, then
// written atomically so a half-written report is never left behind.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/chefscore/testctl/internal/filelock"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ChefScore Test Report</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.4rem 0.8rem; }
</style>
</head>
<body>
%s</body>
</html>
`

// Summary holds everything the report shows about one combined run.
type Summary struct {
	Results   map[string]bool
	Elapsed   time.Duration
	StartedAt time.Time
}

// Markdown renders the summary as a Markdown document. Runner rows are
// ordered by name for stable output.
func Markdown(s Summary) string {
	var sb strings.Builder

	sb.WriteString("# ChefScore Analytics Dashboard - Test Report\n\n")
	fmt.Fprintf(&sb, "Run started: %s\n\n", s.StartedAt.Format(time.RFC1123))
	fmt.Fprintf(&sb, "Time elapsed: %.2f seconds\n\n", s.Elapsed.Seconds())

	sb.WriteString("| Suite | Result |\n")
	sb.WriteString("|-------|--------|\n")

	names := make([]string, 0, len(s.Results))
	for name := range s.Results {
		names = append(names, name)
	}
	sort.Strings(names)

	allPassed := true
	for _, name := range names {
		status := "PASSED"
		if !s.Results[name] {
			status = "FAILED"
			allPassed = false
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", name, status)
	}

	sb.WriteString("\n")
	if allPassed {
		sb.WriteString("**All tests passed.**\n")
	} else {
		sb.WriteString("**Some tests failed.**\n")
	}
	return sb.String()
}

// WriteHTML converts the summary to HTML and writes it to path.
func WriteHTML(path string, s Summary) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(s)), &body); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	page := fmt.Sprintf(pageTemplate, body.String())
	if err := filelock.AtomicWrite(path, []byte(page)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
