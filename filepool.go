package filepool

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/yuku/filepool/internal/table"
)

const (
	// DefaultPollInterval is the wait between unsuccessful acquire
	// attempts when Config.PollInterval is zero.
	DefaultPollInterval = 2 * time.Second

	// MaxRecordLen is the default maximum record length in bytes
	// (status marker plus name). Names near the bound are truncated
	// when the table is written.
	MaxRecordLen = table.DefaultMaxRecordLen
)

// Pool represents a pool of named resources backed by a table file.
// A Pool holds no open file handles; every operation opens, locks,
// mutates and closes the table so that any number of Pool values in
// any number of processes can coordinate on the same file.
type Pool struct {
	path         string
	pollInterval time.Duration
	timeout      time.Duration
	maxRecordLen int
	logger       *slog.Logger
}

// Config holds the configuration for a Pool.
type Config struct {
	// Path is the location of the table file. Required. The file must
	// be on a filesystem visible to every coordinating process.
	Path string

	// PollInterval is the wait between unsuccessful acquire attempts.
	// Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// AcquireTimeout bounds how long a single resource acquisition may
	// keep retrying. Zero means wait indefinitely. The retry budget is
	// AcquireTimeout divided by PollInterval, rounded up.
	AcquireTimeout time.Duration

	// MaxRecordLen is the maximum record length in bytes (status
	// marker plus name). Defaults to MaxRecordLen. Names that would
	// exceed it are truncated when written.
	MaxRecordLen int

	// Logger receives diagnostics from deferred releases, whose errors
	// cannot be returned to the caller. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: table path cannot be empty", ErrArgument)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("%w: poll interval cannot be negative: %s", ErrArgument, c.PollInterval)
	}
	if c.AcquireTimeout < 0 {
		return fmt.Errorf("%w: acquire timeout cannot be negative: %s", ErrArgument, c.AcquireTimeout)
	}
	if c.MaxRecordLen < 0 {
		return fmt.Errorf("%w: max record length cannot be negative: %d", ErrArgument, c.MaxRecordLen)
	}
	return nil
}

// New returns a Pool for the table at conf.Path. It performs no file
// access; the table need not exist until Create is called or an
// operation touches it.
func New(conf Config) (*Pool, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool configuration: %w", err)
	}
	p := &Pool{
		path:         conf.Path,
		pollInterval: conf.PollInterval,
		timeout:      conf.AcquireTimeout,
		maxRecordLen: conf.MaxRecordLen,
		logger:       conf.Logger,
	}
	if p.pollInterval == 0 {
		p.pollInterval = DefaultPollInterval
	}
	if p.maxRecordLen == 0 {
		p.maxRecordLen = MaxRecordLen
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p, nil
}

// Path returns the location of the table file.
func (p *Pool) Path() string {
	return p.path
}

// Ping verifies that the table file exists and can be opened
// read-write. It reports ErrFileNotOpen otherwise.
func (p *Pool) Ping() error {
	f, err := os.OpenFile(p.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotOpen, p.path)
	}
	return f.Close()
}

// fileNotOpen converts an open failure from the lock layer into the
// pool's error taxonomy, leaving other errors untouched.
func (p *Pool) fileNotOpen(err error) error {
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && pathErr.Op == "open" {
		return fmt.Errorf("%w: %s", ErrFileNotOpen, p.path)
	}
	return err
}
