package main

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/embkit/arena"
	"github.com/spf13/cobra"
)

var allocFill string

func init() {
	cmd := newAllocCmd()
	cmd.Flags().StringVar(&allocFill, "fill", "", "Fill the payload with a string value")
	rootCmd.AddCommand(cmd)
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <snapshot> <size>",
		Short: "Allocate a page in a snapshot",
		Long: `The alloc command opens a snapshot, allocates a page of the given size,
and syncs the result back to the file. The printed reference can be passed
to the free command later.

Example:
  arenactl alloc heap.img 128
  arenactl alloc heap.img 64 --fill "boot-args"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc(args)
		},
	}
	return cmd
}

func runAlloc(args []string) error {
	path := args[0]
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}

	a, err := arena.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer a.Close()

	ref, buf, err := a.Alloc(size)
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}
	if allocFill != "" {
		copy(buf, allocFill)
	}

	if err := a.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}

	printVerbose("Allocated %d bytes (rounded to %d)\n", size, len(buf))

	if jsonOut {
		return printJSON(map[string]interface{}{
			"ref":       int(ref),
			"size":      len(buf),
			"freeBytes": a.FreeBytes(),
		})
	}

	printInfo("Allocated ref %d (%d bytes)\n", ref, len(buf))
	printInfo("  Free: %d bytes\n", a.FreeBytes())
	return nil
}
