package main

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/pkg/printer"
)

var diffContext int

func init() {
	cmd := newDiffCmd()
	cmd.Flags().IntVar(&diffContext, "context", 3, "Lines of context around each change")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Compare the dumps of two files",
		Long: `The diff command dumps both files as text and shows the
differences as a unified diff.

Example:
  pgctl diff old.lib new.lib
  pgctl diff before.d64 after.d64 --context 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

// textDump renders the full text tree of path without colors.
func textDump(path string) (string, error) {
	doc, err := newRegistry().Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	if err := doc.Load(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := printer.New(&buf, printer.DefaultOptions()).PrintTree(doc.Root()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func runDiff(args []string) error {
	path1, path2 := args[0], args[1]

	printVerbose("Comparing %s and %s...\n", path1, path2)

	dump1, err := textDump(path1)
	if err != nil {
		return fmt.Errorf("failed to dump %s: %w", path1, err)
	}
	dump2, err := textDump(path2)
	if err != nil {
		return fmt.Errorf("failed to dump %s: %w", path2, err)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(dump1),
		B:        difflib.SplitLines(dump2),
		FromFile: path1,
		ToFile:   path2,
		Context:  diffContext,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file1":     path1,
			"file2":     path2,
			"identical": diff == "",
			"diff":      diff,
		})
	}
	if diff == "" {
		printInfo("Files are identical\n")
		return nil
	}
	printInfo("%s", diff)
	return nil
}
