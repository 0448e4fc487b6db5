// Copyright Veritas Press, 2026. All rights reserved.

package types

import "fmt"

// SchemaError reports a missing or malformed field in a source file. It
// carries enough position information to locate the fault: the file, the
// one-based entry index within it (zero when the error is file-level), and
// the offending field.
type SchemaError struct {
	// File is the source file path.
	File string

	// Entry is the one-based entry index within File, or zero for a
	// file-level fault (e.g. a missing section title).
	Entry int

	// Field names the missing or malformed field. Empty for a whole-file
	// fault (e.g. TOML that does not parse).
	Field string

	// Reason describes what is wrong with the field.
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Entry > 0:
		return fmt.Sprintf("%s: entry %d: field %q: %s", e.File, e.Entry, e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %s", e.File, e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
}

// RenderError reports text the renderer cannot represent safely in the
// target markup. Rendering never drops content silently; it fails instead.
type RenderError struct {
	// Entry is the document-wide question number of the offending entry.
	Entry int

	// Field names the part of the entry that failed ("question", "answer",
	// or "reference").
	Field string

	// Reason describes why the text could not be rendered.
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("entry %d: %s: %s", e.Entry, e.Field, e.Reason)
}
