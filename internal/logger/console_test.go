package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestHeaderRulesMatchTextWidth(t *testing.T) {
	var buf bytes.Buffer
	c := NewPlain(&buf)

	c.Header("Running Unit Tests")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 non-empty lines, got %d: %q", len(lines), lines)
	}

	wantRule := strings.Repeat("=", len("Running Unit Tests")+8)
	if lines[0] != wantRule {
		t.Errorf("top rule = %q, want %q", lines[0], wantRule)
	}
	if lines[2] != wantRule {
		t.Errorf("bottom rule = %q, want %q", lines[2], wantRule)
	}
	if !strings.Contains(lines[1], "Running Unit Tests") {
		t.Errorf("middle line %q missing header text", lines[1])
	}
}

func TestSectionFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewPlain(&buf)

	c.Section("Running JavaScript Tests")

	if !strings.Contains(buf.String(), "--- Running JavaScript Tests ---") {
		t.Errorf("section output %q missing divider", buf.String())
	}
}

func TestStatusf(t *testing.T) {
	var buf bytes.Buffer
	c := NewPlain(&buf)

	c.Statusf("Javascript Tests", true)
	c.Statusf("Python Tests", false)

	out := buf.String()
	if !strings.Contains(out, "Javascript Tests: PASSED") {
		t.Errorf("output %q missing PASSED line", out)
	}
	if !strings.Contains(out, "Python Tests: FAILED") {
		t.Errorf("output %q missing FAILED line", out)
	}
}

func TestPlainOutputHasNoEscapeCodes(t *testing.T) {
	var buf bytes.Buffer
	c := NewPlain(&buf)

	c.Successf("ok")
	c.Failf("bad")
	c.Warnf("careful")
	c.Infof("fyi")
	c.Boldf("loud")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("plain console emitted ANSI escapes: %q", buf.String())
	}
}

func TestWriterSharesDestination(t *testing.T) {
	var buf bytes.Buffer
	c := NewPlain(&buf)

	c.Infof("starting")
	if _, err := c.Writer().Write([]byte("raw child output\n")); err != nil {
		t.Fatalf("Writer().Write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "starting") || !strings.Contains(out, "raw child output") {
		t.Errorf("console and child output not interleaved on one writer: %q", out)
	}
}

func TestNewOnBufferDisablesColor(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	c.Successf("ok")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-TTY writer got ANSI escapes: %q", buf.String())
	}
}
