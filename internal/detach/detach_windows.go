//go:build windows

package detach

import (
	"fmt"
	"os/exec"
	"syscall"
)

// DETACHED_PROCESS creates a process without a console so it runs
// independently of the parent.
const DETACHED_PROCESS = 0x00000008

func spawnDetached(exe string, args []string) error {
	cmd := exec.Command(exe, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | DETACHED_PROCESS,
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start detached process: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release detached process: %w", err)
	}
	return nil
}
