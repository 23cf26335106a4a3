package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/printer"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

var (
	decodeProfile string
	decodeStruct  string
	decodeOffset  string
	decodeCount   int
)

func init() {
	cmd := newDecodeCmd()
	cmd.Flags().StringVar(&decodeProfile, "profile", "", "YAML profile with structure definitions")
	cmd.Flags().StringVar(&decodeStruct, "struct", "", "Structure to decode (required)")
	cmd.Flags().StringVar(&decodeOffset, "offset", "0", "File offset of the first record (decimal or 0x hex)")
	cmd.Flags().IntVar(&decodeCount, "count", 1, "Number of consecutive records")
	cmd.MarkFlagRequired("struct")
	rootCmd.AddCommand(cmd)
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode records at an offset",
		Long: `The decode command decodes one or more records of a structure at a
file offset. The structure comes from a module schema or from a YAML profile.

Example:
  pgctl decode --struct coff_header app.obj
  pgctl decode --struct section_header --offset 0x14 --count 3 app.obj
  pgctl decode --profile layouts.yaml --struct Chunk --offset 8 image.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args)
		},
	}
	return cmd
}

func runDecode(args []string) error {
	schemas, err := loadSchemas(decodeProfile)
	if err != nil {
		return err
	}
	def, ok := schemas[decodeStruct]
	if !ok {
		return fmt.Errorf("unknown structure %q", decodeStruct)
	}

	offset, err := strconv.ParseInt(decodeOffset, 0, 64)
	if err != nil || offset < 0 {
		return fmt.Errorf("invalid offset %q", decodeOffset)
	}
	if decodeCount < 1 {
		return fmt.Errorf("invalid count %d", decodeCount)
	}

	f, err := view.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if !f.IsValidOffset(int(offset)) {
		return fmt.Errorf("offset 0x%x is outside of the file size", offset)
	}

	root := document.NewNode(f.BaseName(), document.IconDocument, nil)
	for i := 0; i < decodeCount; i++ {
		off := int(offset) + i*def.Size()
		name := fmt.Sprintf("%s at 0x%08x", def.Name(), off)
		root.AddChild(document.NewStructNode(name, document.IconBinary, def, f, off))
	}

	opts, err := printerOptions()
	if err != nil {
		return err
	}
	return printer.New(os.Stdout, opts).PrintTree(root)
}
