// =============================================================================
// USV to XLSX Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the USV to XLSX Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   usv-to-xlsx < input.usv > output.xlsx   - Convert stdin to one workbook
//   usv-to-xlsx -o a.xlsx -o b.xlsx         - One workbook per USV file
//   usv-to-xlsx version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : tokenizer, converter, config, logging, inspection
//   - pkg/           : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/usvtools/usv-to-xlsx/cmd"
)

func main() {
	cmd.Execute()
}
