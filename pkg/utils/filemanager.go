// =============================================================================
// USV to XLSX Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Directory management for output destinations
//   - Output file naming for multi-file runs
//
// NAMING:
//   One destination is generated per USV file in the input, so a generated
//   destination list always matches the file count.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//   - params: Additional placeholder values, keyed without braces.
//
// RETURNS:
//   - The generated file name, always ending in ".xlsx".
//
// EXAMPLE:
//   format: "{index}_{timestamp}.xlsx"
//   params: {"index": "002"}
//   output: "002_20240115_143022.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}
	return result
}

// DestinationNames returns n output paths in dir, one per USV file.
//
// {index} is the 1-based file number, zero padded to 3 digits. If the format
// does not contain {index} or {uuid}, the index is appended before the
// extension so names never collide.
func DestinationNames(dir, format string, n int) []string {
	if !strings.Contains(format, "{index}") && !strings.Contains(format, "{uuid}") {
		base := strings.TrimSuffix(format, filepath.Ext(format))
		format = base + "_{index}.xlsx"
	}

	names := make([]string, n)
	for i := range n {
		name := GenerateOutputFileName(format, map[string]string{
			"index": fmt.Sprintf("%03d", i+1),
		})
		names[i] = filepath.Join(dir, name)
	}
	return names
}
