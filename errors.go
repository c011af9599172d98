package filepool

import "errors"

// Sentinel errors returned by pool operations. The four failure kinds
// are the whole taxonomy; ExitCode maps them to the process exit-code
// contract shared by every process coordinating on a table.
var (
	// ErrFileNotOpen is returned when the table file is missing or
	// cannot be opened read-write. It is never retried.
	ErrFileNotOpen = errors.New("could not open file")

	// ErrNotFound is returned when a release names a resource that is
	// absent from the table or not currently claimed.
	ErrNotFound = errors.New("could not find key")

	// ErrArgument is returned when caller-supplied parameters are
	// invalid, before any file access.
	ErrArgument = errors.New("argument error")

	// ErrTimeout is returned when an acquire exhausted its retry budget
	// without finding a free resource.
	ErrTimeout = errors.New("time-out")
)

// ExitCode maps err to the exit-code contract shared by every process
// coordinating on a table: 0 success, 1 file not open, 2 not found,
// 3 argument error, 4 time-out. Errors outside the taxonomy map to 1,
// since in practice they are file access failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFileNotOpen):
		return 1
	case errors.Is(err, ErrNotFound):
		return 2
	case errors.Is(err, ErrArgument):
		return 3
	case errors.Is(err, ErrTimeout):
		return 4
	default:
		return 1
	}
}
