package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/pkg/modules"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
)

var schemaProfile string

func init() {
	cmd := newSchemaCmd()
	cmd.Flags().StringVar(&schemaProfile, "profile", "", "Describe the structures of a YAML profile instead")
	rootCmd.AddCommand(cmd)
}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [name]",
		Short: "List or describe record layouts",
		Long: `The schema command lists the record layouts known to the modules,
or describes one of them field by field as YAML.

Example:
  pgctl schema
  pgctl schema coff_header
  pgctl schema --profile layouts.yaml Chunk`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(args)
		},
	}
	return cmd
}

// loadSchemas returns the module schemas, or the structures of --profile.
func loadSchemas(profile string) (map[string]*schema.Struct, error) {
	if profile == "" {
		return modules.Schemas(newRegistry().Modules()), nil
	}
	data, err := os.ReadFile(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	structs, err := schema.LoadProfile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	out := make(map[string]*schema.Struct, len(structs))
	for _, s := range structs {
		out[s.Name()] = s
	}
	return out, nil
}

func runSchema(args []string) error {
	schemas, err := loadSchemas(schemaProfile)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		names := make([]string, 0, len(schemas))
		for name := range schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		if jsonOut {
			return printJSON(names)
		}
		for _, name := range names {
			printInfo("%-28s %4d bytes\n", name, schemas[name].Size())
		}
		return nil
	}

	s, ok := schemas[args[0]]
	if !ok {
		return fmt.Errorf("unknown structure %q", args[0])
	}
	out, err := schema.Describe(s)
	if err != nil {
		return err
	}
	printInfo("%s", out)
	return nil
}
