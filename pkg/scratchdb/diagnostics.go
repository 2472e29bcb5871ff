package scratchdb

import "fmt"

// DiagnosticKind classifies a non-fatal finding
type DiagnosticKind int

const (
	DiagUnknownField         DiagnosticKind = iota + 1 // Key outside the field registry
	DiagUnsupportedExtension                           // Stub entry for an untested file type
	DiagOddString                                      // String field with a lone trailing byte
	DiagUnexpectedTag                                  // Record tag other than otrk
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnknownField:
		return "unknown-field"
	case DiagUnsupportedExtension:
		return "unsupported-extension"
	case DiagOddString:
		return "odd-string"
	case DiagUnexpectedTag:
		return "unexpected-tag"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic is a warning raised while reading or building entries. It
// never stops the operation that produced it.
type Diagnostic struct {
	Kind    DiagnosticKind
	Entry   int    // Entry index, or -1 when not tied to a stored entry
	EntryID string // Entry file identifier, if known
	Key     string // Field key, if relevant
	Message string
}

func (d Diagnostic) String() string {
	if d.Entry >= 0 {
		return fmt.Sprintf("%s: entry %d (%s): %s", d.Kind, d.Entry, d.EntryID, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
