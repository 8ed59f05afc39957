// =============================================================================
// USV to XLSX Converter - USV Tokenizer
// =============================================================================
//
// This package splits Unicode Separated Values (USV) text into its nested
// hierarchy:
//
//   File  -> sequence of Groups
//   Group -> sequence of Records
//   Record -> sequence of Units (strings)
//
// Every level is exposed as a lazy, forward-only iter.Seq. Nothing is copied
// until a Unit is yielded, and only a Unit containing escapes allocates.
//
// SEPARATORS:
//   Both the visible symbol style and the ASCII control style are accepted,
//   and may be mixed in one input.
//
//   | Role                | Symbol  | Control |
//   |---------------------|---------|---------|
//   | Unit separator      | U+241F  | U+001F  |
//   | Record separator    | U+241E  | U+001E  |
//   | Group separator     | U+241D  | U+001D  |
//   | File separator      | U+241C  | U+001C  |
//   | Escape              | U+241B  | U+001B  |
//   | End of transmission | U+2404  | U+0004  |
//
// SPLITTING RULES:
//   - A separator terminates the item before it.
//   - Text after the last separator is an item only when it is non-empty.
//   - A single line break directly after a separator is layout, not content.
//   - Escape makes the following character literal.
//   - An unescaped end of transmission ends the input.
//
// =============================================================================

package usv

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// SEPARATOR CHARACTERS
// =============================================================================

const (
	UnitSeparator     = '␟'
	RecordSeparator   = '␞'
	GroupSeparator    = '␝'
	FileSeparator     = '␜'
	Escape            = '␛'
	EndOfTransmission = '␄'

	UnitSeparatorControl     = '\u001F'
	RecordSeparatorControl   = '\u001E'
	GroupSeparatorControl    = '\u001D'
	FileSeparatorControl     = '\u001C'
	EscapeControl            = '\u001B'
	EndOfTransmissionControl = '\u0004'
)

// level identifies which separator splits a piece of text.
type level int

const (
	unitLevel level = iota
	recordLevel
	groupLevel
	fileLevel
)

// matches reports whether r is the separator for this level in either style.
func (l level) matches(r rune) bool {
	switch l {
	case unitLevel:
		return r == UnitSeparator || r == UnitSeparatorControl
	case recordLevel:
		return r == RecordSeparator || r == RecordSeparatorControl
	case groupLevel:
		return r == GroupSeparator || r == GroupSeparatorControl
	case fileLevel:
		return r == FileSeparator || r == FileSeparatorControl
	}
	return false
}

func isEscape(r rune) bool {
	return r == Escape || r == EscapeControl
}

func isEndOfTransmission(r rune) bool {
	return r == EndOfTransmission || r == EndOfTransmissionControl
}

// =============================================================================
// HIERARCHY TYPES
// =============================================================================
// Each type is a view onto a slice of the original input. The text still
// carries its escapes; they are resolved only when a Unit is produced.

// File is one USV file: a sequence of groups. It maps to one workbook.
type File struct {
	text string
}

// Group is a sequence of records. It maps to one worksheet.
type Group struct {
	text string
}

// Record is a sequence of units. It maps to one row.
type Record struct {
	text string
}

// Groups returns the groups of the file in input order.
func (f File) Groups() iter.Seq[Group] {
	return func(yield func(Group) bool) {
		for text := range split(f.text, groupLevel) {
			if !yield(Group{text: text}) {
				return
			}
		}
	}
}

// Records returns the records of the group in input order.
func (g Group) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for text := range split(g.text, recordLevel) {
			if !yield(Record{text: text}) {
				return
			}
		}
	}
}

// Units returns the unescaped units of the record in input order.
func (r Record) Units() iter.Seq[string] {
	return func(yield func(string) bool) {
		for text := range split(r.text, unitLevel) {
			if !yield(unescape(text)) {
				return
			}
		}
	}
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Files splits text into USV files. Input without any file separator is a
// single file; empty input has no files.
func Files(text string) iter.Seq[File] {
	text = truncateAtEnd(text)
	return func(yield func(File) bool) {
		for part := range split(text, fileLevel) {
			if !yield(File{text: part}) {
				return
			}
		}
	}
}

// Groups returns every group of every file in input order. This is the view
// used when all of the input goes into a single workbook.
func Groups(text string) iter.Seq[Group] {
	return func(yield func(Group) bool) {
		for file := range Files(text) {
			for group := range file.Groups() {
				if !yield(group) {
					return
				}
			}
		}
	}
}

// CountFiles returns the number of files Files would yield.
func CountFiles(text string) int {
	n := 0
	for range Files(text) {
		n++
	}
	return n
}

// CountGroups returns the number of groups Groups would yield.
func CountGroups(text string) int {
	n := 0
	for range Groups(text) {
		n++
	}
	return n
}

// =============================================================================
// SCANNING
// =============================================================================

// split yields the pieces of text delimited by the separator of lvl.
// Escaped characters are skipped over so an escaped separator never splits.
func split(text string, lvl level) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		i := 0
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			switch {
			case isEscape(r):
				i += size
				if i < len(text) {
					_, next := utf8.DecodeRuneInString(text[i:])
					i += next
				}
			case lvl.matches(r):
				if !yield(text[start:i]) {
					return
				}
				i = skipLineBreak(text, i+size)
				start = i
			default:
				i += size
			}
		}
		if start < len(text) {
			yield(text[start:])
		}
	}
}

// skipLineBreak returns the index after a "\n" or "\r\n" starting at i, or i.
func skipLineBreak(text string, i int) int {
	if strings.HasPrefix(text[i:], "\r\n") {
		return i + 2
	}
	if strings.HasPrefix(text[i:], "\n") {
		return i + 1
	}
	return i
}

// truncateAtEnd cuts text at the first unescaped end of transmission.
func truncateAtEnd(text string) string {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case isEscape(r):
			i += size
			if i < len(text) {
				_, next := utf8.DecodeRuneInString(text[i:])
				i += next
			}
		case isEndOfTransmission(r):
			return text[:i]
		default:
			i += size
		}
	}
	return text
}

// unescape removes escape characters, keeping the character each one
// protects. A trailing escape is dropped.
func unescape(text string) string {
	if !strings.ContainsFunc(text, isEscape) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	escaped := false
	for _, r := range text {
		if !escaped && isEscape(r) {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
