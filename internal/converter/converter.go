// =============================================================================
// USV to XLSX Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic: the structural mapping
// from the USV hierarchy to the workbook hierarchy.
//
// MAPPING:
//   Group  i -> worksheet i
//   Record j -> row j     (zero-based, +1 per record, empty records included)
//   Unit   k -> column k  (zero-based, reset for every record)
//
// CONVERSION PIPELINE:
//   1. Tokenize the input text into groups (internal/usv)
//   2. Map each group to a worksheet
//   3. Collect the worksheets into a workbook
//   4. Serialize the workbook (file, buffer, or writer)
//
// The first cell write that fails aborts the conversion. Nothing is written
// to any destination for a workbook that failed to map.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"

	"github.com/usvtools/usv-to-xlsx/internal/logging"
	"github.com/usvtools/usv-to-xlsx/internal/usv"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Converter.
type Options struct {
	// SheetNamePrefix names worksheets <prefix>1, <prefix>2, ...
	// Default: "Sheet"
	SheetNamePrefix string

	// Logger receives progress records. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the default converter options.
func DefaultOptions() Options {
	return Options{SheetNamePrefix: "Sheet"}
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter maps USV text to workbooks. It holds no state between calls.
type Converter struct {
	prefix string
	logger *slog.Logger
}

// New creates a Converter.
func New(opts Options) *Converter {
	if opts.SheetNamePrefix == "" {
		opts.SheetNamePrefix = "Sheet"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Converter{
		prefix: opts.SheetNamePrefix,
		logger: opts.Logger,
	}
}

// SheetName returns the name of the worksheet at zero-based index i.
func (c *Converter) SheetName(i int) string {
	return c.prefix + strconv.Itoa(i+1)
}

// =============================================================================
// STRUCTURAL MAPPER
// =============================================================================

// Worksheet maps one group to a worksheet named name. Record j becomes row j
// and unit k of that record becomes column k.
func (c *Converter) Worksheet(name string, group usv.Group) (*Worksheet, error) {
	ws := NewWorksheet(name)

	row := 0
	for record := range group.Records() {
		if err := ws.ensureRow(row); err != nil {
			return nil, err
		}

		col := 0
		for unit := range record.Units() {
			if err := ws.Write(row, col, unit); err != nil {
				return nil, err
			}
			logging.Trace(c.logger, "cell written", "sheet", name, "row", row, "column", col)
			col++
		}
		row++
	}

	c.logger.Debug("worksheet mapped", "sheet", name, "rows", row)
	return ws, nil
}

// Workbook maps every group to a worksheet, in order. Zero groups give a
// workbook with zero worksheets.
func (c *Converter) Workbook(groups iter.Seq[usv.Group]) (*Workbook, error) {
	wb := NewWorkbook()

	i := 0
	for group := range groups {
		ws, err := c.Worksheet(c.SheetName(i), group)
		if err != nil {
			return nil, err
		}
		wb.Push(ws)
		i++
	}

	c.logger.Debug("workbook mapped", "sheets", i)
	return wb, nil
}

// Convert maps all groups of text into one workbook. File separators only
// delimit groups here; see ConvertFiles for one workbook per file.
func (c *Converter) Convert(text string) (*Workbook, error) {
	return c.Workbook(usv.Groups(text))
}

// =============================================================================
// DESTINATIONS
// =============================================================================

// ConvertToFile converts text and saves the workbook at path.
func (c *Converter) ConvertToFile(text, path string) error {
	wb, err := c.Convert(text)
	if err != nil {
		return err
	}
	if err := wb.Save(path); err != nil {
		return err
	}
	c.logger.Info("workbook saved", "path", path, "sheets", len(wb.sheets))
	return nil
}

// ConvertToBuffer converts text and returns the serialized workbook.
func (c *Converter) ConvertToBuffer(text string) ([]byte, error) {
	wb, err := c.Convert(text)
	if err != nil {
		return nil, err
	}
	data, err := wb.Bytes()
	if err != nil {
		return nil, err
	}
	c.logger.Info("workbook serialized", "bytes", len(data), "sheets", len(wb.sheets))
	return data, nil
}

// ConvertToWriter converts text and writes the serialized workbook to w.
func (c *Converter) ConvertToWriter(text string, w io.Writer) error {
	wb, err := c.Convert(text)
	if err != nil {
		return err
	}
	n, err := wb.WriteTo(w)
	if err != nil {
		return err
	}
	c.logger.Info("workbook written", "bytes", n, "sheets", len(wb.sheets))
	return nil
}

// =============================================================================
// MULTI-FILE VARIANT
// =============================================================================

// Result describes one workbook written by ConvertFiles.
type Result struct {
	// Destination is the path the workbook was saved to.
	Destination string

	// Sheets is the number of worksheets (groups) in the workbook.
	Sheets int

	// Rows is the total number of rows (records) across all worksheets.
	Rows int
}

// ConvertFiles converts USV file i of text into a workbook saved at
// destinations[i].
//
// The file count is checked against len(destinations) before anything is
// written. Files are then converted and saved in order; the first failure
// stops the run and is returned as a *FileError. Workbooks saved before the
// failure stay on disk. The results of those saved workbooks are returned
// alongside the error.
func (c *Converter) ConvertFiles(text string, destinations []string) ([]Result, error) {
	files := usv.CountFiles(text)
	if files != len(destinations) {
		return nil, fmt.Errorf("%w: %d file(s), %d destination(s)", ErrDestinationCount, files, len(destinations))
	}

	results := make([]Result, 0, files)
	i := 0
	for file := range usv.Files(text) {
		dest := destinations[i]

		wb, err := c.Workbook(file.Groups())
		if err != nil {
			return results, &FileError{Index: i, Destination: dest, Err: err}
		}
		if err := wb.Save(dest); err != nil {
			return results, &FileError{Index: i, Destination: dest, Err: err}
		}

		result := Result{Destination: dest, Sheets: len(wb.sheets)}
		for _, ws := range wb.sheets {
			result.Rows += ws.RowCount()
		}
		results = append(results, result)

		c.logger.Info("workbook saved", "file", i+1, "path", dest, "sheets", result.Sheets, "rows", result.Rows)
		i++
	}

	return results, nil
}

// =============================================================================
// PACKAGE-LEVEL HELPERS
// =============================================================================
// These use DefaultOptions.

// Convert maps text into a workbook with default options.
func Convert(text string) (*Workbook, error) {
	return New(DefaultOptions()).Convert(text)
}

// ConvertToFile converts text and saves it at path with default options.
func ConvertToFile(text, path string) error {
	return New(DefaultOptions()).ConvertToFile(text, path)
}

// ConvertToBuffer converts text to XLSX bytes with default options.
func ConvertToBuffer(text string) ([]byte, error) {
	return New(DefaultOptions()).ConvertToBuffer(text)
}

// ConvertToWriter converts text and writes XLSX bytes to w with default
// options.
func ConvertToWriter(text string, w io.Writer) error {
	return New(DefaultOptions()).ConvertToWriter(text, w)
}

// ConvertFiles writes one workbook per USV file with default options.
func ConvertFiles(text string, destinations []string) ([]Result, error) {
	return New(DefaultOptions()).ConvertFiles(text, destinations)
}
