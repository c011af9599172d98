// Package detach starts the current executable as a background process
// that outlives the caller. It replaces the classic double-fork
// daemonization trick: a goroutine dies with its process, so work that
// must survive a short-lived command (such as a delayed release) is
// handed to a detached re-invocation of the binary instead.
package detach

import (
	"fmt"
	"os"
)

// Spawn re-runs the current executable with args in a detached process
// and returns as soon as the process has started. The child's output is
// discarded and its exit status is unobservable by the caller.
func Spawn(args ...string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	return spawnDetached(exe, args)
}
