// Package filelock serialises access to a resource table across
// otherwise unrelated processes using the operating system's advisory
// file locking facility. The lock covers the whole file and is held
// only for the duration of one critical section, never across a poll
// sleep.
package filelock

import (
	"os"
)

// WithLock opens path for read/write, blocks until it holds an
// exclusive whole-file lock, runs fn with the locked handle, then
// releases the lock and closes the file. The lock is released on every
// exit path, including when fn returns an error.
//
// If the file cannot be opened the open error is returned before any
// lock attempt is made.
func WithLock(path string, fn func(f *os.File) error) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lock(f); err != nil {
		return err
	}
	defer func() {
		_ = unlock(f)
	}()

	return fn(f)
}
