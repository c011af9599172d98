package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yuku/filepool"
)

var (
	acquireCount   int
	acquireTimeout time.Duration
)

var acquireCmd = &cobra.Command{
	Use:     "acquire FILE",
	Aliases: []string{"obtain"},
	Short:   "Claim free resources and print their names",
	Long: `Acquire claims the next free resource in FILE, marks it as used and
prints its name to stdout. With --count it claims that many resources,
one line each; every claim is an independent lock/scan/unlock cycle, so
when a later claim times out the names already claimed are still
printed before the error. Without --timeout it polls forever.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := filepool.New(filepool.Config{
			Path:           args[0],
			PollInterval:   viper.GetDuration("poll"),
			AcquireTimeout: acquireTimeout,
		})
		if err != nil {
			return err
		}

		start := time.Now()
		resources, err := pool.AcquireN(cmd.Context(), acquireCount)
		// Print the partial batch even on failure; the caller owns
		// those resources now and needs their names to release them.
		for _, r := range resources {
			fmt.Fprintln(cmd.OutOrStdout(), r.Name())
		}
		if err != nil {
			return err
		}
		slog.Debug("acquired resources",
			"table", args[0], "count", len(resources), "elapsed", time.Since(start))
		return nil
	},
}

func init() {
	acquireCmd.Flags().IntVarP(&acquireCount, "count", "n", 1, "number of resources to claim")
	acquireCmd.Flags().DurationVarP(&acquireTimeout, "timeout", "t", 0, "give up after this long (0 = wait forever)")
}
