package main

import (
	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/pkg/symbols"
)

func init() {
	rootCmd.AddCommand(newUndecorateCmd())
}

func newUndecorateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undecorate <name>...",
		Short: "Turn decorated symbol names into readable text",
		Long: `The undecorate command resolves compiler-decorated symbol names,
including import thunk prefixes and calling convention suffixes.

Example:
  pgctl undecorate "?Run@App@@QEAAHXZ"
  pgctl undecorate __imp__MessageBoxW@16 _ZN3foo3barEv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndecorate(args)
		},
	}
	return cmd
}

type undecorated struct {
	Name      string `json:"name"`
	Text      string `json:"text"`
	Decorated bool   `json:"decorated"`
}

func runUndecorate(args []string) error {
	r := symbols.New(symbols.DefaultOptions())

	results := make([]undecorated, 0, len(args))
	for _, name := range args {
		results = append(results, undecorated{
			Name:      name,
			Text:      r.Undecorate(name),
			Decorated: symbols.IsDecorated(name),
		})
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, res := range results {
		if verbose {
			printInfo("%s -> %s\n", res.Name, res.Text)
			continue
		}
		printInfo("%s\n", res.Text)
	}
	stats := r.Stats()
	printVerbose("Cache: %d hits, %d misses, %d entries\n", stats.Hits, stats.Misses, stats.Entries)
	return nil
}
