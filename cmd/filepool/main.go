// Command filepool allocates named resources from a shared table file.
//
// Usage:
//
//	filepool create FILE KEY...     write a fresh table of free resources
//	filepool append FILE KEY...     add resources to an existing table
//	filepool acquire FILE           claim the next free resource and print it
//	filepool release FILE KEY...    mark claimed resources free again
//
// The table file must live on a filesystem visible to every process
// coordinating on it, e.g. /dev/shm on a single machine. Exit codes:
// 0 success, 1 file not open, 2 key not found, 3 argument error,
// 4 time-out.
//
// Defaults can be set in $HOME/.config/filepool/filepool.yaml or via
// FILEPOOL_* environment variables (e.g. FILEPOOL_POLL=500ms).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yuku/filepool"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "filepool",
	Short:         "File-based resource pool allocator",
	Long: `filepool lets unrelated processes share a bounded pool of named
resources (GPU slots, license seats, ports) through a plain text file.
No daemon, no database: the table file is the whole coordination medium.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Duration("poll", filepool.DefaultPollInterval, "wait between acquire attempts")

	viper.SetDefault("poll", filepool.DefaultPollInterval)
	viper.SetEnvPrefix("FILEPOOL")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("poll", rootCmd.PersistentFlags().Lookup("poll"))

	// Optional config file; missing is fine.
	viper.SetConfigName("filepool")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.config/filepool")
	}
	_ = viper.ReadInConfig()

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(acquireCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(releaseJobCmd)
}

// minArgs wraps cobra's validator so command misuse maps to the
// argument-error exit code instead of a generic failure.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %s", filepool.ErrArgument, err)
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %s", filepool.ErrArgument, err)
		}
		return nil
	}
}

// setupLogging routes diagnostics to stderr so acquired resource names
// on stdout stay machine-readable.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

// newPool builds a pool from the FILE argument plus the configured
// poll interval.
func newPool(path string) (*filepool.Pool, error) {
	return filepool.New(filepool.Config{
		Path:         path,
		PollInterval: viper.GetDuration("poll"),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(filepool.ExitCode(err))
	}
}
