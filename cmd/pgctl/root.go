package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/modules"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/coff"
	"github.com/vividos/ProgrammersGlasses/pkg/printer"
	"github.com/vividos/ProgrammersGlasses/pkg/registry"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	noColor   bool
	logDir    string
	outFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pgctl",
	Short: "Inspect the structure of binary developer files",
	Long: `pgctl is a developer's file content viewer for the command line.
It recognizes COFF object files and libraries, PE images, PNG images,
SID tunes and C64 disk images, and prints their decoded structure as
an indented tree, JSON or YAML.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write debug logs to this directory")
	rootCmd.PersistentFlags().
		StringVar(&outFormat, "format", "text", "Output format (text, json, yaml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging enables file logging when --log-dir is given.
func setupLogging() error {
	if logDir == "" {
		return logger.Init(logger.Options{})
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{Enabled: true, LogDir: logDir, Level: level})
}

// newRegistry returns the registry with all built-in modules.
func newRegistry() *registry.Registry {
	return modules.NewRegistry(coff.DefaultOptions())
}

// outputFormat resolves --json and --format into a printer format.
func outputFormat() (printer.Format, error) {
	if jsonOut {
		return printer.FormatJSON, nil
	}
	return printer.ParseFormat(outFormat)
}

// printerOptions returns printer options for the global flags.
func printerOptions() (printer.Options, error) {
	format, err := outputFormat()
	if err != nil {
		return printer.Options{}, err
	}
	opts := printer.DefaultOptions()
	opts.Format = format
	opts.Color = !noColor
	return opts, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
