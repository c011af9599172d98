package main

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yuku/filepool/internal/detach"
)

var (
	releaseDelay time.Duration
	releaseJobID string
)

var releaseCmd = &cobra.Command{
	Use:   "release FILE KEY...",
	Short: "Mark claimed resources free again",
	Long: `Release marks each KEY in FILE free again. A key that is absent or
not currently claimed is reported as not found, but the remaining keys
are still processed.

With --delay the command verifies that FILE opens, hands the work to a
detached background process and returns immediately. The delay applies
once to the whole batch. Failures inside the detached process cannot
be reported back; delayed releases are fire-and-forget.`,
	Args: minArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := newPool(args[0])
		if err != nil {
			return err
		}
		if releaseDelay <= 0 {
			return pool.Release(cmd.Context(), args[1:]...)
		}

		// The deferred release must survive this process, so it runs
		// in a detached re-invocation of the binary rather than a
		// goroutine. Check the table opens first: that is the only
		// error still observable from here.
		if err := pool.Ping(); err != nil {
			return err
		}
		job := uuid.NewString()
		spawnArgs := []string{
			"release-job",
			"--delay", releaseDelay.String(),
			"--job", job,
			args[0],
		}
		spawnArgs = append(spawnArgs, args[1:]...)
		if err := detach.Spawn(spawnArgs...); err != nil {
			return err
		}
		slog.Debug("scheduled deferred release",
			"job", job, "table", args[0], "keys", args[1:], "delay", releaseDelay)
		return nil
	},
}

// releaseJobCmd is the detached half of "release --delay". It sleeps
// out the delay and performs the batch release. Its exit status is
// unobservable; failures only surface in the log.
var releaseJobCmd = &cobra.Command{
	Use:    "release-job FILE KEY...",
	Hidden: true,
	Args:   minArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := newPool(args[0])
		if err != nil {
			return err
		}
		time.Sleep(releaseDelay)
		if err := pool.Release(cmd.Context(), args[1:]...); err != nil {
			slog.Error("deferred release failed",
				"job", releaseJobID, "table", args[0], "keys", args[1:], "error", err)
			return err
		}
		slog.Debug("deferred release done",
			"job", releaseJobID, "table", args[0], "keys", args[1:])
		return nil
	},
}

func init() {
	releaseCmd.Flags().DurationVarP(&releaseDelay, "delay", "d", 0, "wait this long before releasing")
	releaseJobCmd.Flags().DurationVar(&releaseDelay, "delay", 0, "wait this long before releasing")
	releaseJobCmd.Flags().StringVar(&releaseJobID, "job", "", "job identifier for log correlation")
}
