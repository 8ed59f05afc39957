package converter

import (
	"errors"
	"fmt"
)

// ErrDestinationCount is returned when the number of output destinations
// does not match the number of USV files in the input.
var ErrDestinationCount = errors.New("destination count does not match file count")

// CellError reports a cell write that the workbook format rejects.
// The underlying excelize error is available through errors.Is / errors.As.
type CellError struct {
	// Sheet is the worksheet name.
	Sheet string

	// Row and Column are zero-based.
	Row    int
	Column int

	Err error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q row %d column %d: %v", e.Sheet, e.Row, e.Column, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// FileError reports a failure converting or saving one file of a
// multi-file run.
type FileError struct {
	// Index is the zero-based position of the file in the input.
	Index int

	// Destination is the output path for the file.
	Destination string

	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %d (%s): %v", e.Index+1, e.Destination, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
