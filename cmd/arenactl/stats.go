package main

import (
	"fmt"

	"github.com/joshuapare/embkit/arena"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <snapshot>",
		Short: "Show region statistics",
		Long: `The stats command validates a snapshot's page chain and reports
capacity, free space, page counts, the largest free page, and utilization.

Example:
  arenactl stats heap.img
  arenactl stats heap.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	path := args[0]

	printVerbose("Opening snapshot: %s\n", path)

	a, err := arena.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer a.Close()

	s := a.Stats()

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":        path,
			"capacity":    s.Capacity,
			"freeBytes":   s.FreeBytes,
			"pages":       s.Pages,
			"freePages":   s.FreePages,
			"largestFree": s.LargestFree,
			"utilization": s.Utilization,
		})
	}

	printInfo("\nRegion Statistics:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Capacity: %d bytes\n", s.Capacity)
	printInfo("  Free: %d bytes\n", s.FreeBytes)
	printInfo("  Pages: %d (%d free)\n", s.Pages, s.FreePages)
	printInfo("  Largest free page: %d bytes\n", s.LargestFree)
	printInfo("  Utilization: %.1f%%\n", s.Utilization*100)
	return nil
}
