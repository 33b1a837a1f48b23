package main

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/embkit/arena"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newFreeCmd())
}

func newFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "free <snapshot> <ref>",
		Short: "Release an allocated page",
		Long: `The free command releases a previously allocated page and merges it
with any adjacent free pages. A reference that does not name an allocated
page boundary is silently ignored, matching the allocator's contract.

Example:
  arenactl free heap.img 8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
	return cmd
}

func runFree(args []string) error {
	path := args[0]
	ref, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid ref %q: %w", args[1], err)
	}

	a, err := arena.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer a.Close()

	before := a.FreeBytes()
	a.Free(arena.Ref(ref))
	if err := a.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}

	released := a.FreeBytes() - before
	if jsonOut {
		return printJSON(map[string]interface{}{
			"ref":       int(ref),
			"released":  released,
			"freeBytes": a.FreeBytes(),
		})
	}

	if released > 0 {
		printInfo("Released ref %d\n", ref)
	} else {
		printInfo("Ref %d did not name an allocated page; nothing released\n", ref)
	}
	printInfo("  Free: %d bytes\n", a.FreeBytes())
	return nil
}
