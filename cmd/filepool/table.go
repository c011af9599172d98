package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create FILE KEY...",
	Short: "Write a fresh resource table",
	Long: `Create writes a new table at FILE with one free record per KEY, in
the given order, replacing any existing file. Keys should be unique;
duplicates are legal but only the first occurrence is ever allocated.`,
	Args: minArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := newPool(args[0])
		if err != nil {
			return err
		}
		if err := pool.Create(args[1:]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s with %d resources\n", args[0], len(args)-1)
		return nil
	},
}

var appendCmd = &cobra.Command{
	Use:   "append FILE KEY...",
	Short: "Add resources to an existing table",
	Long: `Append adds one free record per KEY to the table at FILE, under the
table lock. Existing records keep their positions and statuses, so the
table can be extended while other processes are using it.`,
	Args: minArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := newPool(args[0])
		if err != nil {
			return err
		}
		if err := pool.Append(args[1:]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "appended %d resources to %s\n", len(args)-1, args[0])
		return nil
	},
}
