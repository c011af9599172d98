package filepool

import (
	"fmt"
	"io"
	"os"

	"github.com/yuku/filepool/internal/filelock"
	"github.com/yuku/filepool/internal/table"
)

// Create writes a fresh table containing one free record per name, in
// the given order, truncating any existing file. No lock is taken: the
// table is being born, nothing can be coordinating on it yet. Names
// longer than the configured record length are truncated; the caller
// is responsible for keeping names unique (a duplicate name is legal
// but only its first occurrence is ever claimed or released).
func (p *Pool) Create(names []string) error {
	if err := table.ValidateNames(names); err != nil {
		return fmt.Errorf("%w: %s", ErrArgument, err)
	}

	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotOpen, p.path)
	}
	if err := table.AppendRecords(f, names, p.maxRecordLen); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close table: %w", err)
	}
	return nil
}

// Append adds free records for the given names to an existing table,
// under the file lock so a concurrent scan never sees a torn record.
// Offsets of existing records do not move and their statuses are left
// untouched, so the table can be extended while in use. Uniqueness
// against existing names is not validated.
func (p *Pool) Append(names []string) error {
	if err := table.ValidateNames(names); err != nil {
		return fmt.Errorf("%w: %s", ErrArgument, err)
	}

	err := filelock.WithLock(p.path, func(f *os.File) error {
		size, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			return fmt.Errorf("failed to seek to end of table: %w", err)
		}
		// A table missing its final line break would otherwise merge
		// its last record with the first appended one.
		if size > 0 {
			last := make([]byte, 1)
			if _, err := f.ReadAt(last, size-1); err != nil {
				return fmt.Errorf("failed to read end of table: %w", err)
			}
			if last[0] != '\n' {
				if _, err := f.Write([]byte{'\n'}); err != nil {
					return fmt.Errorf("failed to terminate last record: %w", err)
				}
			}
		}
		return table.AppendRecords(f, names, p.maxRecordLen)
	})
	return p.fileNotOpen(err)
}
