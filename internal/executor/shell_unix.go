//go:build !windows

package executor

import (
	"context"
	"os/exec"
)

func shell(ctx context.Context, line string) (*exec.Cmd, error) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, sh, "-c", line), nil
}
