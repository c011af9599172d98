//go:build windows

package filelock

import (
	"os"

	"golang.org/x/sys/windows"
)

// lock blocks until it holds an exclusive LockFileEx lock on f. All
// participants lock the same byte range, so locking the first byte is
// equivalent to a whole-file lock.
func lock(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol)
}

func unlock(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, ol)
}
