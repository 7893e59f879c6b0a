// Package logger provides the colorized console output used by every runner:
// ruled headers, section markers, and per-check status lines.
//
// Color output is enabled only when the destination is a terminal and is
// disabled automatically for pipes and files.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colorScheme defines consistent colors for the different message kinds.
// Green: success lines. Red: failure lines. Yellow: warnings and install
// guidance. Blue: informational context. Cyan: headers.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	info    *color.Color
	header  *color.Color
	bold    *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgBlue),
		header:  color.New(color.FgCyan, color.Bold),
		bold:    color.New(color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{s.success, s.fail, s.warn, s.info, s.header, s.bold} {
			c.DisableColor()
		}
	}
	return s
}

// Console writes human-readable status output for a runner invocation.
type Console struct {
	out    io.Writer
	scheme *colorScheme
}

// New creates a Console writing to out. Color is enabled when out is a TTY.
func New(out io.Writer) *Console {
	return &Console{
		out:    out,
		scheme: newColorScheme(isTerminal(out)),
	}
}

// NewPlain creates a Console with color output forced off, regardless of the
// destination. The color package also honors NO_COLOR globally.
func NewPlain(out io.Writer) *Console {
	return &Console{
		out:    out,
		scheme: newColorScheme(false),
	}
}

// isTerminal reports whether w is a TTY that can render ANSI colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Header prints a ruled banner naming the phase being run:
//
//	============================
//	    Checking Prerequisites
//	============================
func (c *Console) Header(text string) {
	rule := strings.Repeat("=", len(text)+8)
	fmt.Fprintln(c.out)
	c.scheme.header.Fprintln(c.out, rule)
	c.scheme.header.Fprintf(c.out, "    %s    \n", text)
	c.scheme.header.Fprintln(c.out, rule)
	fmt.Fprintln(c.out)
}

// Section prints a lightweight divider between dispatcher phases.
func (c *Console) Section(text string) {
	fmt.Fprintln(c.out)
	c.scheme.info.Fprintf(c.out, "--- %s ---\n", text)
	fmt.Fprintln(c.out)
}

// Successf prints a green status line.
func (c *Console) Successf(format string, args ...any) {
	c.scheme.success.Fprintf(c.out, format+"\n", args...)
}

// Failf prints a red status line.
func (c *Console) Failf(format string, args ...any) {
	c.scheme.fail.Fprintf(c.out, format+"\n", args...)
}

// Warnf prints a yellow guidance line.
func (c *Console) Warnf(format string, args ...any) {
	c.scheme.warn.Fprintf(c.out, format+"\n", args...)
}

// Infof prints a blue informational line.
func (c *Console) Infof(format string, args ...any) {
	c.scheme.info.Fprintf(c.out, format+"\n", args...)
}

// Boldf prints an uncolored bold line.
func (c *Console) Boldf(format string, args ...any) {
	c.scheme.bold.Fprintf(c.out, format+"\n", args...)
}

// Printf prints an unstyled line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Statusf prints "name: PASSED" in green or "name: FAILED" in red.
func (c *Console) Statusf(name string, passed bool) {
	if passed {
		c.scheme.success.Fprintf(c.out, "%s: PASSED\n", name)
		return
	}
	c.scheme.fail.Fprintf(c.out, "%s: FAILED\n", name)
}

// Writer exposes the underlying writer so child process output can be
// relayed through the same destination.
func (c *Console) Writer() io.Writer {
	return c.out
}
