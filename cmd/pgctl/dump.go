package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/printer"
	"github.com/vividos/ProgrammersGlasses/pkg/registry"
)

var (
	dumpDepth int
	dumpIcons bool
	dumpSpew  bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpDepth, "depth", 0, "Maximum tree depth (0 = unlimited)")
	cmd.Flags().BoolVar(&dumpIcons, "icons", false, "Show the icon category of each node")
	cmd.Flags().BoolVar(&dumpSpew, "spew", false, "Dump decoded structure rows as Go values")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Dump the decoded structure of files",
		Long: `The dump command loads each file with the first module that
recognizes it and prints the node tree with texts, structure rows and tables.

Example:
  pgctl dump kernel32.lib
  pgctl dump image.png --depth 2
  pgctl dump tune.sid --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	opts, err := printerOptions()
	if err != nil {
		return err
	}
	opts.MaxDepth = dumpDepth
	opts.ShowIcons = dumpIcons

	reg := newRegistry()
	failed := 0
	for _, path := range args {
		if err := dumpFile(reg, path, opts); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be dumped", failed, len(args))
	}
	return nil
}

func dumpFile(reg *registry.Registry, path string, opts printer.Options) error {
	if opts.Format == printer.FormatText {
		printInfo("Dumping file: %s\n", path)
	}

	if _, err := os.Stat(path); err != nil {
		printError("Couldn't open file: %s\n\n", path)
		return err
	}

	doc, err := reg.Open(path)
	switch {
	case errors.Is(err, registry.ErrNoModule):
		printError("No suitable module found for file: %s\n\n", path)
		return err
	case errors.Is(err, registry.ErrNoReader):
		printError("The module couldn't initialize a reader for the file: %s\n\n", path)
		return err
	case err != nil:
		printError("Couldn't open file: %s\n\n", path)
		return err
	}
	defer doc.Close()

	printVerbose("Module: %s\n", doc.Module.DisplayName())

	start := time.Now()
	if err := doc.Load(); err != nil {
		printError("Loading file failed: %v\n\n", err)
		return err
	}
	elapsed := time.Since(start)
	logger.Info("file loaded", "file", path, "module", doc.Module.DisplayName(), "elapsed", elapsed)
	printVerbose("Loading file took %d ms.\n", elapsed.Milliseconds())

	if quiet {
		return nil
	}
	if err := printer.New(os.Stdout, opts).PrintTree(doc.Root()); err != nil {
		return fmt.Errorf("failed to print %s: %w", path, err)
	}
	if dumpSpew {
		spewRows(doc.Root())
	}
	if opts.Format == printer.FormatText {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// spewRows dumps the decoded rows of every structure node.
func spewRows(root *document.Node) {
	root.Walk(func(n *document.Node, depth int) bool {
		if c, ok := n.Content().(*document.StructContent); ok {
			fmt.Fprintf(os.Stdout, "%s (%s):\n", n.Name, c.Definition.Name())
			spewConfig.Fdump(os.Stdout, c.Rows())
		}
		return dumpDepth <= 0 || depth+1 < dumpDepth
	})
}
