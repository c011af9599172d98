// Package table implements the on-disk format of a resource table: one
// record per line, a single status byte followed by the resource name.
//
// Record offsets never move once written. A status change overwrites
// exactly one byte in place, which keeps concurrent readers holding a
// stale scan position safe as long as they reacquire the file lock
// before trusting what they read.
package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// StatusFree marks a record whose resource is available.
	StatusFree byte = ' '

	// StatusClaimed marks a record whose resource is in use.
	StatusClaimed byte = '!'
)

// DefaultMaxRecordLen is the maximum number of bytes in a record
// (status byte plus name, excluding the line terminator).
const DefaultMaxRecordLen = 1024

// Record is one parsed line of a resource table.
type Record struct {
	// Offset is the byte position of the status marker in the file.
	Offset int64

	Status byte
	Name   string
}

// Free reports whether the record's resource is available.
func (r Record) Free() bool {
	return r.Status == StatusFree
}

// Scanner reads records sequentially from the start of a table,
// tracking the byte offset of each record so callers can rewrite the
// status marker in place.
type Scanner struct {
	br     *bufio.Reader
	offset int64
}

// NewScanner returns a Scanner positioned at the start of r. The caller
// is expected to hold the table lock for the lifetime of the scan.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{br: bufio.NewReader(r)}
}

// Next returns the next record. It returns io.EOF when the table has no
// more records, which is the normal end-of-scan outcome rather than a
// failure. Blank lines are skipped: they have no status byte that could
// be rewritten without clobbering the line terminator.
func (s *Scanner) Next() (Record, error) {
	for {
		line, err := s.br.ReadString('\n')
		if len(line) == 0 {
			if err == nil || err == io.EOF {
				return Record{}, io.EOF
			}
			return Record{}, err
		}
		if err != nil && err != io.EOF {
			return Record{}, err
		}

		rec := Record{Offset: s.offset}
		s.offset += int64(len(line))

		line = strings.TrimRight(line, "\r\n")
		if len(line) == 0 {
			continue
		}
		rec.Status = line[0]
		rec.Name = line[1:]
		return rec, nil
	}
}

// WriteStatus overwrites the status marker of the record starting at
// offset. Only the single marker byte is touched; the name bytes and
// every other record keep their positions.
func WriteStatus(w io.WriterAt, offset int64, status byte) error {
	if _, err := w.WriteAt([]byte{status}, offset); err != nil {
		return fmt.Errorf("failed to rewrite status at offset %d: %w", offset, err)
	}
	return nil
}

// AppendRecords writes one free record per name to w. Names longer than
// maxLen-1 bytes are truncated so no record exceeds maxLen bytes
// (marker included). Pass maxLen <= 0 for DefaultMaxRecordLen.
func AppendRecords(w io.Writer, names []string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxRecordLen
	}
	bw := bufio.NewWriter(w)
	for _, name := range names {
		if len(name) > maxLen-1 {
			name = name[:maxLen-1]
		}
		if _, err := bw.WriteString(string(StatusFree) + name + "\n"); err != nil {
			return fmt.Errorf("failed to write record %q: %w", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}

// ValidateNames rejects names that would corrupt the table layout. A
// name containing a line break would shift the offsets of every record
// written after it; an empty name would create a record that can never
// be released by name.
func ValidateNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("at least one name is required")
	}
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		if strings.ContainsAny(name, "\r\n") {
			return fmt.Errorf("name %q cannot contain line breaks", name)
		}
	}
	return nil
}
