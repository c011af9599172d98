package filepool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yuku/filepool/internal/filelock"
	"github.com/yuku/filepool/internal/table"
)

// Acquire claims one free resource from the table and returns it. The
// table is scanned from the start under the file lock and the first
// free record wins; its status byte is rewritten in place before the
// lock is dropped, so no two processes can ever be handed the same
// resource.
//
// When no resource is free, Acquire releases the lock, sleeps for the
// poll interval and retries. It fails with ErrTimeout once the retry
// budget (AcquireTimeout divided by PollInterval, rounded up) is
// exhausted, or with ctx.Err() if ctx is cancelled during a sleep. It
// fails immediately with ErrFileNotOpen, without retrying, if the
// table cannot be opened.
func (p *Pool) Acquire(ctx context.Context) (*Resource, error) {
	name, err := p.acquireOne(ctx)
	if err != nil {
		return nil, err
	}
	return &Resource{pool: p, name: name}, nil
}

// AcquireN claims count resources. Each resource is claimed through
// its own independent lock/scan/unlock cycle; the claims are not one
// atomic batch. If a later claim fails, the resources already claimed
// are returned alongside the error so the caller can release or keep
// them — a partial success is surfaced, never hidden.
func (p *Pool) AcquireN(ctx context.Context, count int) ([]*Resource, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be positive: %d", ErrArgument, count)
	}
	resources := make([]*Resource, 0, count)
	for range count {
		r, err := p.Acquire(ctx)
		if err != nil {
			return resources, err
		}
		resources = append(resources, r)
	}
	return resources, nil
}

// acquireOne runs the poll loop for a single resource.
func (p *Pool) acquireOne(ctx context.Context) (string, error) {
	// Zero timeout means poll forever.
	maxAttempts := 0
	if p.timeout > 0 {
		maxAttempts = int((p.timeout + p.pollInterval - 1) / p.pollInterval)
	}

	attempts := 0
	for {
		name, found, err := p.claimFirstFree()
		if err != nil {
			return "", err
		}
		if found {
			return name, nil
		}
		if maxAttempts > 0 && attempts >= maxAttempts {
			return "", fmt.Errorf("%w: no free resource in %s after %s", ErrTimeout, p.path, p.timeout)
		}
		attempts++

		// The lock is not held across this sleep; other processes are
		// free to claim and release in the meantime.
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}
}

// claimFirstFree locks the table, scans from the start and claims the
// first free record. found is false when the scan reached the end of
// the table without finding one, which is a normal outcome.
func (p *Pool) claimFirstFree() (name string, found bool, err error) {
	err = filelock.WithLock(p.path, func(f *os.File) error {
		sc := table.NewScanner(f)
		for {
			rec, err := sc.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to scan table: %w", err)
			}
			if rec.Free() {
				if err := table.WriteStatus(f, rec.Offset, table.StatusClaimed); err != nil {
					return err
				}
				name = rec.Name
				found = true
				return nil
			}
		}
	})
	if err != nil {
		return "", false, p.fileNotOpen(err)
	}
	return name, found, nil
}
