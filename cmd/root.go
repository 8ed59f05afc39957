// =============================================================================
// USV to XLSX Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the converter itself: it reads USV text from standard input and writes XLSX.
//
// COBRA CLI STRUCTURE:
//   rootCmd (usv-to-xlsx)    - convert stdin to XLSX
//   └── versionCmd (usv-to-xlsx version)
//
// OUTPUT MODES:
//   (no output flags)  : one workbook with every group, bytes to stdout
//   -o a.xlsx -o b.xlsx: one workbook per USV file, paths given in order
//   --output-dir out/  : one workbook per USV file, generated names
//
// EXIT CODES:
//   0 on success, 1 on any failure (message on stderr as "Error: ...").
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// FLAG VALUES
// =============================================================================

// options holds the parsed flag values for one command invocation.
type options struct {
	// cfgFile is the path to the optional configuration file.
	cfgFile string

	// verbosity is the -v count: 0=none, 1=error, 2=warn, 3=info, 4=debug, 5=trace.
	verbosity int

	// test prints diagnostic output to stderr.
	test bool

	// outputs are explicit destinations, one per USV file.
	outputs []string

	// outputDir enables generated destinations, one per USV file.
	outputDir string

	// sheetPrefix overrides the configured worksheet name prefix.
	sheetPrefix string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the root command with its flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "usv-to-xlsx",
		Short:   "Convert Unicode Separated Values (USV) to Microsoft Excel (XLSX)",
		Version: Version,
		Long: `usv-to-xlsx reads USV text from standard input and writes an XLSX workbook.

Every USV group becomes a worksheet, every record a row, and every unit a cell,
in input order.

Example Usage:
  cat example.usv | usv-to-xlsx > example.xlsx
  usv-to-xlsx -o first.xlsx -o second.xlsx < two-files.usv
  usv-to-xlsx --output-dir ./out < many-files.usv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (default is ./usv-to-xlsx.yaml if present)",
	)

	rootCmd.PersistentFlags().CountVarP(
		&opts.verbosity,
		"verbose",
		"v",
		"Set the verbosity level: 0=none, 1=error, 2=warn, 3=info, 4=debug, 5=trace. Example: -vvv",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().BoolVar(
		&opts.test,
		"test",
		false,
		"Print test output for debugging, verifying, tracing, and the like",
	)

	rootCmd.Flags().StringArrayVarP(
		&opts.outputs,
		"output",
		"o",
		nil,
		"Output workbook path; repeat once per USV file in the input",
	)

	rootCmd.Flags().StringVar(
		&opts.outputDir,
		"output-dir",
		"",
		"Write one workbook per USV file into this directory with generated names",
	)

	rootCmd.Flags().StringVar(
		&opts.sheetPrefix,
		"sheet-prefix",
		"",
		"Worksheet name prefix (default is \"Sheet\", giving Sheet1, Sheet2, ...)",
	)

	rootCmd.MarkFlagsMutuallyExclusive("output", "output-dir")

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI with the process arguments and standard streams.
// This is called by main.main().
func Execute() {
	if code := Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// Run executes the root command and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
