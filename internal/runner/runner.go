// Package runner launches external commands. It provides two execution
// modes: a captured mode for short probes and install steps, and a streaming
// mode that relays a test suite's combined output line-by-line as it is
// produced.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// ErrLaunchFailed indicates the external command could not be started at all,
// as opposed to running and exiting non-zero.
var ErrLaunchFailed = errors.New("failed to launch command")

// CommandRunner abstracts external command execution for testability.
// Implementations return the combined stdout/stderr output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

// ExecRunner executes real commands with captured output.
type ExecRunner struct {
	Dir string // working directory (empty = current dir)
}

// NewExecRunner creates a CommandRunner rooted at dir.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// Run executes the command and returns its combined stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Result is the outcome of one streamed command invocation.
type Result struct {
	Success  bool
	ExitCode int
	Duration time.Duration
	Err      error // launch failure, nil when the process ran to completion
}

// Streamer runs a command with stderr merged into stdout, relaying output to
// Out one line at a time so long test runs show live progress.
type Streamer struct {
	Dir string
	Out io.Writer
}

// NewStreamer creates a Streamer rooted at dir writing to out.
func NewStreamer(dir string, out io.Writer) *Streamer {
	return &Streamer{Dir: dir, Out: out}
}

// Run launches argv, blocks until the child exits, and maps the exit code to
// a Result. A command that cannot be started is converted into a failed
// Result carrying ErrLaunchFailed rather than propagating.
func (s *Streamer) Run(ctx context.Context, argv []string) Result {
	start := time.Now()

	if len(argv) == 0 {
		return Result{
			ExitCode: 1,
			Err:      fmt.Errorf("%w: empty command", ErrLaunchFailed),
		}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if s.Dir != "" {
		cmd.Dir = s.Dir
	}

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return Result{
			ExitCode: 1,
			Duration: time.Since(start),
			Err:      fmt.Errorf("%w: %s: %v", ErrLaunchFailed, argv[0], err),
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Jest and pytest can emit very long single lines (diffs,
		// tracebacks); ReadString has no line-length cap, and the pipe must
		// be drained to EOF or cmd.Wait blocks on the stalled copier.
		br := bufio.NewReader(pr)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				if !strings.HasSuffix(line, "\n") {
					line += "\n"
				}
				io.WriteString(s.Out, line)
			}
			if err != nil {
				return
			}
		}
	}()

	err := cmd.Wait()
	pw.Close()
	<-done
	pr.Close()

	res := Result{Duration: time.Since(start)}
	if err == nil {
		res.Success = true
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.ExitCode = 1
	res.Err = err
	return res
}
