// =============================================================================
// USV to XLSX Converter - Convert Run
// =============================================================================
//
// This file implements the root command's conversion run.
//
// PROCESSING PIPELINE:
//   1. Load configuration (optional file, flags override)
//   2. Set up logging on stderr
//   3. Read all of standard input
//   4. Convert:
//      a. single output: every group into one workbook, bytes to stdout
//      b. multi output:  one workbook per USV file, saved to destinations
//   5. With --test, read every produced workbook back and print its layout
//
// =============================================================================

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/usvtools/usv-to-xlsx/internal/config"
	"github.com/usvtools/usv-to-xlsx/internal/converter"
	"github.com/usvtools/usv-to-xlsx/internal/logging"
	"github.com/usvtools/usv-to-xlsx/internal/types"
	"github.com/usvtools/usv-to-xlsx/internal/usv"
	"github.com/usvtools/usv-to-xlsx/internal/xlsxinspect"
	"github.com/usvtools/usv-to-xlsx/pkg/utils"
)

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert orchestrates one conversion run.
func runConvert(cmd *cobra.Command, opts *options) error {
	stderr := cmd.ErrOrStderr()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	verbosity := cfg.Verbosity()
	if cmd.Flags().Changed("verbose") {
		verbosity = opts.verbosity
	}
	if opts.sheetPrefix != "" {
		cfg.SheetNamePrefix = opts.sheetPrefix
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--sheet-prefix: %w", err)
		}
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}

	// =========================================================================
	// STEP 2: LOGGING
	// =========================================================================

	logger := logging.New(stderr, verbosity)
	logger.Debug("configuration loaded",
		"log_level", logging.NameFromVerbosity(verbosity),
		"sheet_name_prefix", cfg.SheetNamePrefix,
		"output_dir", cfg.OutputDir,
	)

	if opts.test {
		fmt.Fprintf(stderr, "args: verbosity=%d outputs=%q output_dir=%q sheet_prefix=%q config=%q\n",
			verbosity, opts.outputs, cfg.OutputDir, cfg.SheetNamePrefix, opts.cfgFile)
	}

	// =========================================================================
	// STEP 3: READ INPUT
	// =========================================================================

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if !utf8.Valid(data) {
		logger.Warn("input is not valid UTF-8; invalid bytes are kept as-is")
	}
	text := string(data)
	logger.Info("input read", "bytes", len(data))

	conv := converter.New(converter.Options{
		SheetNamePrefix: cfg.SheetNamePrefix,
		Logger:          logger,
	})

	// =========================================================================
	// STEP 4: CONVERT
	// =========================================================================

	destinations := opts.outputs
	if len(destinations) == 0 && cfg.OutputDir != "" {
		destinations = utils.DestinationNames(cfg.OutputDir, cfg.OutputNameFormat, usv.CountFiles(text))
		if len(destinations) == 0 {
			logger.Warn("input contains no USV files; nothing written", "output_dir", cfg.OutputDir)
			return nil
		}
	}

	if len(destinations) == 0 {
		return convertToStdout(cmd, conv, text, opts.test)
	}
	return convertToFiles(cmd, conv, logger, text, destinations, opts.test)
}

// =============================================================================
// OUTPUT MODES
// =============================================================================

// convertToStdout writes one workbook with every group to stdout.
func convertToStdout(cmd *cobra.Command, conv *converter.Converter, text string, test bool) error {
	data, err := conv.ConvertToBuffer(text)
	if err != nil {
		return err
	}

	if test {
		book, err := xlsxinspect.Bytes(data)
		if err != nil {
			return fmt.Errorf("failed to inspect output: %w", err)
		}
		printBook(cmd.ErrOrStderr(), "stdout", book)
	}

	if _, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// convertToFiles writes one workbook per USV file to destinations.
func convertToFiles(cmd *cobra.Command, conv *converter.Converter, logger *slog.Logger, text string, destinations []string, test bool) error {
	results, err := conv.ConvertFiles(text, destinations)
	if err != nil {
		logger.Error("conversion stopped", "written", len(results), "error", err)
		return err
	}

	if test {
		for _, result := range results {
			book, err := xlsxinspect.File(result.Destination)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", result.Destination, err)
			}
			printBook(cmd.ErrOrStderr(), result.Destination, book)
		}
	}
	return nil
}

// printBook prints a workbook layout under a heading.
func printBook(w io.Writer, label string, book types.Book) {
	fmt.Fprintf(w, "== %s\n%s", label, book.Summary())
}
