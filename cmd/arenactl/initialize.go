package main

import (
	"fmt"

	"github.com/joshuapare/embkit/arena"
	"github.com/spf13/cobra"
)

var initCapacity int

func init() {
	cmd := newInitCmd()
	cmd.Flags().IntVar(&initCapacity, "capacity", arena.DefaultCapacity, "Region size in bytes")
	rootCmd.AddCommand(cmd)
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <snapshot>",
		Short: "Create and format a new snapshot file",
		Long: `The init command creates a new snapshot file of the given capacity and
formats it as a single free page. The file must not already exist.

Example:
  arenactl init heap.img
  arenactl init heap.img --capacity 16384`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args)
		},
	}
	return cmd
}

func runInit(args []string) error {
	path := args[0]

	printVerbose("Creating snapshot: %s (%d bytes)\n", path, initCapacity)

	a, err := arena.Create(path, initCapacity)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer a.Close()

	if err := a.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":      path,
			"capacity":  a.Capacity(),
			"freeBytes": a.FreeBytes(),
		})
	}

	printInfo("Created %s\n", path)
	printInfo("  Capacity: %d bytes\n", a.Capacity())
	printInfo("  Free: %d bytes\n", a.FreeBytes())
	return nil
}
