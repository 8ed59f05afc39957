// =============================================================================
// USV to XLSX Converter - Workbook Model and Writer
// =============================================================================
//
// Worksheet and Workbook are the in-memory output objects built by the
// mapper. They hold cell text only. Serialization hands the whole workbook to
// excelize once per call:
//
//   Workbook -> excelize.File -> stream writer per sheet -> file/buffer/writer
//
// FORMAT LIMITS (enforced by Worksheet.Write):
//   - rows:    excelize.TotalRows      (1,048,576)
//   - columns: excelize.MaxColumns     (16,384)
//   - text:    excelize.TotalCellChars (32,767 characters)
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/usvtools/usv-to-xlsx/internal/types"
	"github.com/usvtools/usv-to-xlsx/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// errNegativeCoordinates is returned for a write before row or column 0.
var errNegativeCoordinates = errors.New("cell coordinates must not be negative")

// =============================================================================
// WORKSHEET
// =============================================================================

// Worksheet is a grid of text cells addressed by zero-based row and column.
type Worksheet struct {
	name string
	rows [][]string
}

// NewWorksheet returns an empty worksheet.
func NewWorksheet(name string) *Worksheet {
	return &Worksheet{name: name}
}

// Name returns the worksheet tab name.
func (w *Worksheet) Name() string {
	return w.name
}

// RowCount returns the number of rows, including empty ones.
func (w *Worksheet) RowCount() int {
	return len(w.rows)
}

// ColumnCount returns the number of cells in a row, or 0 past the last row.
func (w *Worksheet) ColumnCount(row int) int {
	if row < 0 || row >= len(w.rows) {
		return 0
	}
	return len(w.rows[row])
}

// Cell returns the text at (row, col) and whether that cell was written.
func (w *Worksheet) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(w.rows) || col < 0 || col >= len(w.rows[row]) {
		return "", false
	}
	return w.rows[row][col], true
}

// Write stores value at (row, col). It fails with the excelize limit error
// when the coordinates or the text length exceed what XLSX can hold.
func (w *Worksheet) Write(row, col int, value string) error {
	if err := w.checkRow(row); err != nil {
		return err
	}
	if col < 0 {
		return &CellError{Sheet: w.name, Row: row, Column: col, Err: errNegativeCoordinates}
	}
	if col >= excelize.MaxColumns {
		return &CellError{Sheet: w.name, Row: row, Column: col, Err: excelize.ErrColumnNumber}
	}
	if utf8.RuneCountInString(value) > excelize.TotalCellChars {
		return &CellError{Sheet: w.name, Row: row, Column: col, Err: excelize.ErrCellCharsLength}
	}

	w.growTo(row)
	for len(w.rows[row]) <= col {
		w.rows[row] = append(w.rows[row], "")
	}
	w.rows[row][col] = value
	return nil
}

// ensureRow makes rows 0..row exist, so an empty record still takes its row.
func (w *Worksheet) ensureRow(row int) error {
	if err := w.checkRow(row); err != nil {
		return err
	}
	w.growTo(row)
	return nil
}

func (w *Worksheet) checkRow(row int) error {
	if row < 0 {
		return &CellError{Sheet: w.name, Row: row, Err: errNegativeCoordinates}
	}
	if row >= excelize.TotalRows {
		return &CellError{Sheet: w.name, Row: row, Err: excelize.ErrMaxRows}
	}
	return nil
}

func (w *Worksheet) growTo(row int) {
	for len(w.rows) <= row {
		w.rows = append(w.rows, []string{})
	}
}

// Sheet returns a copy of the worksheet layout.
func (w *Worksheet) Sheet() types.Sheet {
	rows := make([][]string, len(w.rows))
	for i, row := range w.rows {
		rows[i] = append([]string{}, row...)
	}
	return types.Sheet{Name: w.name, Rows: rows}
}

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an ordered list of worksheets.
type Workbook struct {
	sheets []*Worksheet
}

// NewWorkbook returns a workbook with no worksheets.
func NewWorkbook() *Workbook {
	return &Workbook{}
}

// Push appends a worksheet. The workbook takes ownership of it.
func (wb *Workbook) Push(ws *Worksheet) {
	wb.sheets = append(wb.sheets, ws)
}

// Worksheets returns the worksheets in order.
func (wb *Workbook) Worksheets() []*Worksheet {
	return wb.sheets
}

// Book returns a snapshot of the workbook layout.
func (wb *Workbook) Book() types.Book {
	book := types.Book{Sheets: make([]types.Sheet, 0, len(wb.sheets))}
	for _, ws := range wb.sheets {
		book.Sheets = append(book.Sheets, ws.Sheet())
	}
	return book
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Save writes the workbook to an .xlsx file, creating missing parent
// directories.
func (wb *Workbook) Save(path string) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := wb.build()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Bytes returns the serialized workbook.
func (wb *Workbook) Bytes() ([]byte, error) {
	f, err := wb.build()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTo writes the serialized workbook to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	f, err := wb.build()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := f.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("failed to write workbook: %w", err)
	}
	return n, nil
}

// build converts the workbook into an excelize file.
//
// excelize always starts with one sheet. The first worksheet takes it over
// by renaming; with no worksheets it stays as the blank sheet the container
// requires.
func (wb *Workbook) build() (*excelize.File, error) {
	f := excelize.NewFile()

	for i, ws := range wb.sheets {
		if i == 0 {
			if first := f.GetSheetName(0); first != ws.name {
				if err := f.SetSheetName(first, ws.name); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to name sheet %q: %w", ws.name, err)
				}
			}
		} else if _, err := f.NewSheet(ws.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", ws.name, err)
		}

		if err := writeSheet(f, ws); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// writeSheet streams the rows of ws into its excelize sheet in order.
func writeSheet(f *excelize.File, ws *Worksheet) error {
	sw, err := f.NewStreamWriter(ws.name)
	if err != nil {
		return fmt.Errorf("failed to open sheet %q: %w", ws.name, err)
	}

	for r, row := range ws.rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return &CellError{Sheet: ws.name, Row: r, Err: err}
		}

		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
		}

		if err := sw.SetRow(cell, values); err != nil {
			return &CellError{Sheet: ws.name, Row: r, Err: err}
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to finish sheet %q: %w", ws.name, err)
	}
	return nil
}
