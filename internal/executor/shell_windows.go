//go:build windows

package executor

import (
	"context"
	"fmt"
	"os/exec"

	"golang.org/x/sys/windows"
)

// shell splits line with the Windows argument rules and runs the program
// directly; cl and lib resolve through PATH.
func shell(ctx context.Context, line string) (*exec.Cmd, error) {
	args, err := windows.DecomposeCommandLine(line)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command line")
	}
	return exec.CommandContext(ctx, args[0], args[1:]...), nil
}
