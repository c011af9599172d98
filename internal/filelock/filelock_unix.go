//go:build unix

package filelock

import (
	"os"

	"golang.org/x/sys/unix"
)

// lock blocks until it holds an exclusive flock(2) on f. No LOCK_NB:
// the OS queues us behind the current holder.
func lock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
