package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/registry"
)

var modulesSchemas bool

func init() {
	cmd := newModulesCmd()
	cmd.Flags().BoolVar(&modulesSchemas, "schemas", false, "List the record layouts of each module")
	rootCmd.AddCommand(cmd)
}

func newModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the file format modules",
		Long: `The modules command lists the built-in modules in dispatch order
together with the file name filters they accept.

Example:
  pgctl modules
  pgctl modules --schemas
  pgctl modules --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModules(args)
		},
	}
	return cmd
}

type moduleFilter struct {
	Description string `json:"description"`
	Patterns    string `json:"patterns"`
}

type moduleInfo struct {
	Name    string         `json:"name"`
	Icon    string         `json:"icon"`
	Filters []moduleFilter `json:"filters"`
	Schemas []string       `json:"schemas,omitempty"`
}

func describeModule(m document.Module) moduleInfo {
	info := moduleInfo{Name: m.DisplayName(), Icon: m.Icon().String()}
	for _, pair := range registry.ParseFilters(m.FilterStrings()) {
		info.Filters = append(info.Filters, moduleFilter{Description: pair[0], Patterns: pair[1]})
	}
	if p, ok := m.(document.SchemaProvider); ok {
		for _, s := range p.Schemas() {
			info.Schemas = append(info.Schemas, s.Name())
		}
		sort.Strings(info.Schemas)
	}
	return info
}

func runModules(args []string) error {
	reg := newRegistry()

	infos := make([]moduleInfo, 0, len(reg.Modules()))
	for _, m := range reg.Modules() {
		infos = append(infos, describeModule(m))
	}

	if jsonOut {
		return printJSON(infos)
	}

	for _, info := range infos {
		printInfo("%s (%s)\n", info.Name, info.Icon)
		for _, f := range info.Filters {
			printInfo("  %s: %s\n", f.Description, f.Patterns)
		}
		if modulesSchemas {
			for _, s := range info.Schemas {
				printInfo("  schema: %s\n", s)
			}
		}
	}
	printVerbose("\nFilter string: %s\n", reg.FilterStrings())
	return nil
}
