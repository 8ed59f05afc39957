// =============================================================================
// USV to XLSX Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter   (snapshot of an in-memory workbook)
//   - xlsxinspect (snapshot of a serialized workbook)
//   - cmd         (diagnostic output for --test)
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// WORKBOOK LAYOUT
// =============================================================================

// Book is a plain snapshot of a workbook layout.
// Sheets appear in workbook order.
type Book struct {
	Sheets []Sheet
}

// Sheet is a plain snapshot of one worksheet.
type Sheet struct {
	// Name is the worksheet tab name.
	Name string

	// Rows holds cell text by zero-based row, then zero-based column.
	// An empty row is an empty (non-nil) slice.
	Rows [][]string
}

// SheetCount returns the number of worksheets.
func (b Book) SheetCount() int {
	return len(b.Sheets)
}

// Equal reports whether two books have the same sheet names, dimensions and
// cell contents.
func (b Book) Equal(other Book) bool {
	if len(b.Sheets) != len(other.Sheets) {
		return false
	}
	for i := range b.Sheets {
		if !b.Sheets[i].Equal(other.Sheets[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two sheets have the same name and grid.
func (s Sheet) Equal(other Sheet) bool {
	if s.Name != other.Name || len(s.Rows) != len(other.Rows) {
		return false
	}
	for r := range s.Rows {
		if len(s.Rows[r]) != len(other.Rows[r]) {
			return false
		}
		for c := range s.Rows[r] {
			if s.Rows[r][c] != other.Rows[r][c] {
				return false
			}
		}
	}
	return true
}

// RowCount returns the number of rows, counting empty rows.
func (s Sheet) RowCount() int {
	return len(s.Rows)
}

// Summary renders the layout as indented text, one line per row.
//
// EXAMPLE:
//   workbook: 1 sheet(s)
//     Sheet1: 2 row(s)
//       row 0: ["a" "b"]
//       row 1: ["c" "d"]
func (b Book) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "workbook: %d sheet(s)\n", len(b.Sheets))
	for _, sheet := range b.Sheets {
		fmt.Fprintf(&sb, "  %s: %d row(s)\n", sheet.Name, len(sheet.Rows))
		for r, row := range sheet.Rows {
			fmt.Fprintf(&sb, "    row %d: %q\n", r, row)
		}
	}
	return sb.String()
}
