package scratchdb

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// MakeEntry builds a stub entry for a track known only by its path. The
// fields are set in the order Scratch Live needs to show a freshly added
// track (the type must come first):
//
//	ttyp  file type from the extension
//	uadd  time added
//	utme  same time
//	pfil  the path
//
// A rescan in Scratch Live fills in the remaining tags.
func MakeEntry(path string, opts ...Option) *Entry {
	o := newOptions(opts)
	e, _ := makeEntry(path, &o)
	return e
}

func makeEntry(path string, o *options) (*Entry, *Diagnostic) {
	var diag *Diagnostic

	ext := extensionOf(path)
	if !slices.Contains(o.allowedExts, ext) {
		msg := fmt.Sprintf("extension %q not in tested extension list %v", ext, o.allowedExts)
		if ext == "" {
			ext = o.defaultExt
			msg += fmt.Sprintf(", assuming %s", ext)
		}
		o.logger.Warn("stub entry: unsupported extension",
			"path", path,
			"extension", ext,
			"allowed", o.allowedExts)
		diag = &Diagnostic{
			Kind:    DiagUnsupportedExtension,
			Entry:   -1,
			EntryID: path,
			Key:     "ttyp",
			Message: msg,
		}
	}

	now := uint32(o.now().Unix())

	e := NewTrack()
	// Setters cannot fail here: all keys are registered with matching kinds.
	_ = e.SetTrackType(ext)
	_ = e.SetTimeAdded(now)
	_ = e.SetTimeModified(now)
	_ = e.SetFileBase(path)

	return e, diag
}

// extensionOf returns the lower-case extension without its dot. Leading dots
// of hidden file names do not count as an extension.
func extensionOf(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
}
