// Package executor runs synthesized command lines one at a time and stops at
// the first failure.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ldalzotto/EngineCPPRewrite/internal/command"
)

// ErrCommandFailed reports a command that exited with a non-zero status or
// could not be started.
var ErrCommandFailed = errors.New("command failed")

// CommandError is returned for the command that stopped a run.
type CommandError struct {
	Command  command.Command
	ExitCode int // -1 when the process did not run to completion
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%v: %s (exit status %d)", ErrCommandFailed, e.Command.Line, e.ExitCode)
	}
	return fmt.Sprintf("%v: %s: %v", ErrCommandFailed, e.Command.Line, e.Err)
}

func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommandFailed}
	}
	return []error{ErrCommandFailed, e.Err}
}

var (
	echoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Executor runs commands with the host shell. Child output goes to Stdout
// and Stderr, which default to the process streams.
type Executor struct {
	Stdout io.Writer
	Stderr io.Writer

	Echo   bool // print every command line before running it
	DryRun bool // print command lines without running them
}

// Run executes cmds strictly in order. It returns a *CommandError for the
// first command that fails; later commands are not started.
func (e *Executor) Run(ctx context.Context, cmds []command.Command) error {
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.exec(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) exec(ctx context.Context, c command.Command) error {
	stdout, stderr := e.streams()
	if e.Echo || e.DryRun {
		fmt.Fprintln(stdout, echoStyle.Render(c.Line))
	}
	if e.DryRun {
		return nil
	}

	start := time.Now()
	cmd, err := shell(ctx, c.Line)
	if err != nil {
		return e.fail(c, -1, err)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return e.fail(c, exitErr.ExitCode(), err)
		}
		return e.fail(c, -1, err)
	}
	fmt.Fprintln(stdout, timeStyle.Render(fmt.Sprintf("%s : %gs", c.File, time.Since(start).Seconds())))
	return nil
}

func (e *Executor) fail(c command.Command, code int, err error) error {
	cerr := &CommandError{Command: c, ExitCode: code, Err: err}
	_, stderr := e.streams()
	fmt.Fprintln(stderr, failStyle.Render(cerr.Error()))
	return cerr
}

func (e *Executor) streams() (io.Writer, io.Writer) {
	stdout, stderr := e.Stdout, e.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}
