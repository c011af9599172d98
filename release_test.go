package filepool_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuku/filepool"
)

func TestPool_Release(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("frees a claimed resource", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")

		r, err := pool.Acquire(ctx)
		require.NoError(t, err)
		require.NoError(t, pool.Release(ctx, r.Name()))

		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		assert.Equal(t, " R1\n", string(got))
	})

	t.Run("never-claimed resource is not found", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")
		err := pool.Release(ctx, "R1")
		assert.ErrorIs(t, err, filepool.ErrNotFound)
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")
		_, err := pool.Acquire(ctx)
		require.NoError(t, err)
		err = pool.Release(ctx, "nope")
		assert.ErrorIs(t, err, filepool.ErrNotFound)
	})

	t.Run("batch continues past a missing name", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1", "R2")
		_, err := pool.AcquireN(ctx, 2)
		require.NoError(t, err)

		// R1 is freed even though "nope" fails, and the error names
		// the missing key only.
		err = pool.Release(ctx, "R1", "nope", "R2")
		require.ErrorIs(t, err, filepool.ErrNotFound)
		assert.ErrorContains(t, err, "nope")
		assert.NotContains(t, err.Error(), "R1")

		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		assert.Equal(t, " R1\n R2\n", string(got))
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t)
		err := pool.Release(ctx, "R1")
		assert.ErrorIs(t, err, filepool.ErrFileNotOpen)
	})

	t.Run("empty batch is an argument error", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")
		err := pool.Release(ctx)
		assert.ErrorIs(t, err, filepool.ErrArgument)
	})

	t.Run("release is idempotent on a Resource", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")
		r, err := pool.Acquire(ctx)
		require.NoError(t, err)
		require.NoError(t, r.Release(ctx))
		// Second call is a no-op returning the first result, not a
		// NotFound from re-scanning the already-freed record.
		assert.NoError(t, r.Release(ctx))
	})
}

func TestPool_ReleaseAfter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns before the delay elapses", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")
		r, err := pool.Acquire(ctx)
		require.NoError(t, err)

		start := time.Now()
		require.NoError(t, pool.ReleaseAfter(300*time.Millisecond, r.Name()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)

		// Not yet free.
		got, err := os.ReadFile(pool.Path())
		require.NoError(t, err)
		assert.Equal(t, "!R1\n", string(got))

		// Free once the delay has passed.
		assert.Eventually(t, func() bool {
			got, err := os.ReadFile(pool.Path())
			return err == nil && string(got) == " R1\n"
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("missing table fails before the delay is paid", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t)

		start := time.Now()
		err := pool.ReleaseAfter(time.Second, "R1")
		assert.ErrorIs(t, err, filepool.ErrFileNotOpen)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("zero delay degrades to a synchronous release", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1")
		// Never claimed, so the error stays observable.
		err := pool.ReleaseAfter(0, "R1")
		assert.ErrorIs(t, err, filepool.ErrNotFound)
	})

	t.Run("delay applies once to the whole batch", func(t *testing.T) {
		t.Parallel()
		pool := newTestPool(t, "R1", "R2")
		_, err := pool.AcquireN(ctx, 2)
		require.NoError(t, err)

		require.NoError(t, pool.ReleaseAfter(100*time.Millisecond, "R1", "R2"))
		assert.Eventually(t, func() bool {
			got, err := os.ReadFile(pool.Path())
			return err == nil && string(got) == " R1\n R2\n"
		}, 2*time.Second, 20*time.Millisecond)
	})
}
