package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/pkg/printer"
)

var (
	treeDepth  int
	treeIcons  bool
	treeIndent int
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeIcons, "icons", true, "Show the icon category of each node")
	cmd.Flags().IntVar(&treeIndent, "indent", printer.DefaultIndentSize, "Spaces per tree level")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Display the node tree",
		Long: `The tree command displays the node names of a file's document tree
without their content.

Example:
  pgctl tree user32.lib
  pgctl tree disk.d64 --depth 1
  pgctl tree image.png --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)

	opts, err := printerOptions()
	if err != nil {
		return err
	}
	opts.NamesOnly = true
	opts.MaxDepth = treeDepth
	opts.ShowIcons = treeIcons
	opts.IndentSize = treeIndent

	doc, err := newRegistry().Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer doc.Close()

	if err := doc.Load(); err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	return printer.New(os.Stdout, opts).PrintTree(doc.Root())
}
