//go:build unix

package detach

import (
	"fmt"
	"os/exec"
	"syscall"
)

// spawnDetached starts exe in its own session so it keeps running after
// the parent exits or its controlling terminal closes.
func spawnDetached(exe string, args []string) error {
	cmd := exec.Command(exe, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start detached process: %w", err)
	}
	// Release the child so it is not reparented to us for wait purposes.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release detached process: %w", err)
	}
	return nil
}
