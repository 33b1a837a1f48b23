package main

import (
	"fmt"

	"github.com/joshuapare/embkit/arena"
	"github.com/spf13/cobra"
)

var pagesFreeOnly bool

func init() {
	cmd := newPagesCmd()
	cmd.Flags().BoolVar(&pagesFreeOnly, "free", false, "List only free pages")
	rootCmd.AddCommand(cmd)
}

func newPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages <snapshot>",
		Short: "List the page chain",
		Long: `The pages command walks a snapshot's page chain front to back and
prints one line per page: offset, payload size, state, and back link.

Example:
  arenactl pages heap.img
  arenactl pages heap.img --free
  arenactl pages heap.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPages(args)
		},
	}
	return cmd
}

func runPages(args []string) error {
	path := args[0]

	a, err := arena.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer a.Close()

	pages := a.Pages()
	if pagesFreeOnly {
		kept := pages[:0]
		for _, p := range pages {
			if p.Free {
				kept = append(kept, p)
			}
		}
		pages = kept
	}

	if jsonOut {
		return printJSON(pages)
	}

	printInfo("%-8s %-8s %-6s %s\n", "OFFSET", "SIZE", "STATE", "PREV")
	for _, p := range pages {
		state := "used"
		if p.Free {
			state = "free"
		}
		prev := "-"
		if p.Prev >= 0 {
			prev = fmt.Sprintf("%d", p.Prev)
		}
		printInfo("%-8d %-8d %-6s %s\n", p.Offset, p.Size, state, prev)
	}
	return nil
}
