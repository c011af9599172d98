package filepool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuku/filepool/internal/filelock"
	"github.com/yuku/filepool/internal/table"
)

// Release marks the named resources free again. The whole batch is
// processed under one file lock. For each name the table is scanned
// from the start for a record with a matching name that is currently
// claimed; a missing or unclaimed name does not abort the batch, the
// remaining names are still freed. Release returns nil only if every
// name was found and freed; otherwise it returns an error wrapping
// ErrNotFound that lists the names it could not free.
func (p *Pool) Release(ctx context.Context, names ...string) error {
	if err := table.ValidateNames(names); err != nil {
		return fmt.Errorf("%w: %s", ErrArgument, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var missing []string
	err := filelock.WithLock(p.path, func(f *os.File) error {
		for _, name := range names {
			freed, err := freeByName(f, name)
			if err != nil {
				return err
			}
			if !freed {
				missing = append(missing, name)
			}
		}
		return nil
	})
	if err != nil {
		return p.fileNotOpen(err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}

// ReleaseAfter releases the named resources after the given delay
// without blocking the caller. The table is checked to be openable up
// front, producing an early ErrFileNotOpen before any delay is paid;
// after that the remaining work is detached into a background
// goroutine and ReleaseAfter returns nil immediately.
//
// The delay applies once to the whole batch. Errors inside the
// detached task — including resources that turn out to be missing or
// unclaimed once the delay has passed — cannot be reported back to
// the caller; they are logged through the pool's logger and otherwise
// swallowed. Deferred releases are fire-and-forget. A non-positive
// delay degrades to a synchronous Release so its error stays
// observable.
//
// The goroutine dies with the process. A short-lived command that must
// not outwait the delay should hand the release to a detached process
// instead, as the filepool CLI does.
func (p *Pool) ReleaseAfter(delay time.Duration, names ...string) error {
	if err := table.ValidateNames(names); err != nil {
		return fmt.Errorf("%w: %s", ErrArgument, err)
	}
	if delay <= 0 {
		return p.Release(context.Background(), names...)
	}
	if err := p.Ping(); err != nil {
		return err
	}

	logger := p.logger.With(
		"job", uuid.NewString(),
		"table", p.path,
		"delay", delay,
	)
	go func() {
		time.Sleep(delay)
		if err := p.Release(context.Background(), names...); err != nil {
			logger.Error("deferred release failed", "names", names, "error", err)
			return
		}
		logger.Debug("deferred release done", "names", names)
	}()
	return nil
}

// freeByName scans the locked table from the start for a claimed
// record named name and rewrites its status to free. It reports false
// when no such record exists, leaving the table untouched.
func freeByName(f *os.File, name string) (bool, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("failed to rewind table: %w", err)
	}
	sc := table.NewScanner(f)
	for {
		rec, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to scan table: %w", err)
		}
		if rec.Name == name && rec.Status == table.StatusClaimed {
			if err := table.WriteStatus(f, rec.Offset, table.StatusFree); err != nil {
				return false, err
			}
			return true, nil
		}
	}
}
