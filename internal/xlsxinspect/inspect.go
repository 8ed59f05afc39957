// =============================================================================
// USV to XLSX Converter - XLSX Inspector
// =============================================================================
//
// This module reads a serialized workbook back and reports its layout:
// sheet names in tab order, and the text of every cell by row and column.
// It is used for --test diagnostics and to verify produced files.
//
// LIMITS:
//   excelize.GetRows trims trailing empty cells and trailing empty rows, so a
//   row ending in an empty unit reads back shorter than it was written.
//
// =============================================================================

package xlsxinspect

import (
	"bytes"
	"fmt"
	"io"

	"github.com/usvtools/usv-to-xlsx/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// INSPECTION FUNCTIONS
// =============================================================================

// File reads the workbook at path.
func File(path string) (types.Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return types.Book{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return inspect(f)
}

// Bytes reads a workbook from memory.
func Bytes(data []byte) (types.Book, error) {
	return Reader(bytes.NewReader(data))
}

// Reader reads a workbook from r.
func Reader(r io.Reader) (types.Book, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.Book{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return inspect(f)
}

// inspect collects every sheet of an open workbook in tab order.
func inspect(f *excelize.File) (types.Book, error) {
	var book types.Book

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return types.Book{}, fmt.Errorf("failed to read rows of sheet %q: %w", name, err)
		}

		sheet := types.Sheet{Name: name, Rows: make([][]string, len(rows))}
		for i, row := range rows {
			sheet.Rows[i] = append([]string{}, row...)
		}
		book.Sheets = append(book.Sheets, sheet)
	}

	return book, nil
}
