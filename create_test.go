package filepool_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuku/filepool"
)

func TestPool_Create(t *testing.T) {
	t.Parallel()

	t.Run("writes one free record per name in order", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t)
		require.NoError(t, pool.Create([]string{"R1", "R2"}))

		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		assert.Equal(t, " R1\n R2\n", string(got))
	})

	t.Run("truncates an existing table", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "old1", "old2", "old3")
		require.NoError(t, pool.Create([]string{"R1"}))

		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		assert.Equal(t, " R1\n", string(got))
	})

	t.Run("truncates names at the configured record length", func(t *testing.T) {
		t.Parallel()
		pool, err := filepool.New(filepool.Config{
			Path:         filepath.Join(t.TempDir(), "table"),
			MaxRecordLen: 8,
		})
		require.NoError(t, err)
		require.NoError(t, pool.Create([]string{"abcdefghij"}))

		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		assert.Equal(t, " abcdefg\n", string(got))
	})

	t.Run("rejects names that would corrupt the layout", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t)
		assert.ErrorIs(t, pool.Create(nil), filepool.ErrArgument)
		assert.ErrorIs(t, pool.Create([]string{""}), filepool.ErrArgument)
		assert.ErrorIs(t, pool.Create([]string{"a\nb"}), filepool.ErrArgument)
	})
}

func TestPool_Append(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("preserves existing records and statuses", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")

		r, err := pool.Acquire(ctx)
		require.NoError(t, err)
		require.Equal(t, "R1", r.Name())

		require.NoError(t, pool.Append([]string{"R2"}))

		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		require.Equal(t, "!R1\n R2\n", string(got))

		// The appended record is claimable while R1 stays claimed.
		r2, err := pool.Acquire(ctx)
		require.NoError(t, err)
		assert.Equal(t, "R2", r2.Name())
	})

	t.Run("terminates a table missing its final line break", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "table")
		require.NoError(t, os.WriteFile(path, []byte(" R1"), 0o644))

		pool, err := filepool.New(filepool.Config{Path: path, PollInterval: 10 * time.Millisecond})
		require.NoError(t, err)
		require.NoError(t, pool.Append([]string{"R2"}))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, " R1\n R2\n", string(got))
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t)
		assert.ErrorIs(t, pool.Append([]string{"R1"}), filepool.ErrFileNotOpen)
	})
}
