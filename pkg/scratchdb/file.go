package scratchdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ssargent/scratchlivedb/pkg/codec"
	"github.com/ssargent/scratchlivedb/pkg/fields"
	"github.com/ssargent/scratchlivedb/pkg/unknown"
)

// ErrIndexOutOfRange is returned for entry indexes outside the file
var ErrIndexOutOfRange = errors.New("entry index out of range")

// File is a parsed crate or database file: a header and an ordered list of
// entries. It is not safe for concurrent use.
type File struct {
	format  Format
	header  Header
	entries []*Entry
	diags   []Diagnostic
	opts    options
}

// NewFile creates an empty file of the given format
func NewFile(format Format, opts ...Option) *File {
	return &File{
		format: format,
		header: HeaderFor(format),
		opts:   newOptions(opts),
	}
}

// Open reads all of r and parses it as format
func Open(r io.Reader, format Format, opts ...Option) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", format, err)
	}
	return Parse(data, format, opts...)
}

// Parse decodes data as format. Any error aborts the whole parse; there is no
// way to resynchronise after a damaged entry. The returned entries alias data,
// which must not be modified afterwards.
func Parse(data []byte, format Format, opts ...Option) (*File, error) {
	f := NewFile(format, opts...)
	r := codec.NewReader(data)

	h, err := parseHeader(r, format)
	if err != nil {
		return nil, err
	}
	f.header = h

	seen := make(map[string]int)
	var pending []sighting
	for r.Remaining() > 0 {
		off := r.Offset()
		e, err := readEntry(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(f.entries), err)
		}
		pending = f.inspect(len(f.entries), off, e, seen, pending)
		f.entries = append(f.entries, e)
	}

	// A shared tracker only hears about files that parsed completely.
	for _, s := range pending {
		f.opts.tracker.Track(s.entryID, s.key, s.raw)
	}
	f.logUnknowns(seen)
	return f, nil
}

// sighting is an unknown field waiting to be handed to the tracker
type sighting struct {
	entryID string
	key     string
	raw     []byte
}

// inspect records diagnostics for a freshly parsed entry and appends its
// unknown keys to pending.
func (f *File) inspect(index, offset int, e *Entry, seen map[string]int, pending []sighting) []sighting {
	id := e.ID()
	trackID := id
	if trackID == "" {
		trackID = fmt.Sprintf("<entry %d>", index)
	}

	if e.tag != TrackTag {
		f.report(Diagnostic{
			Kind:    DiagUnexpectedTag,
			Entry:   index,
			EntryID: id,
			Message: fmt.Sprintf("record tag %q at offset %d", e.tag, offset),
		})
	}

	for _, key := range e.keys {
		raw := e.values[key]
		field, err := fields.Lookup(key)
		if err != nil {
			pending = append(pending, sighting{entryID: trackID, key: key, raw: raw})
			if _, ok := seen[key]; !ok {
				f.diags = append(f.diags, Diagnostic{
					Kind:    DiagUnknownField,
					Entry:   index,
					EntryID: id,
					Key:     key,
					Message: fmt.Sprintf("unknown field key %q", key),
				})
			}
			seen[key]++
			continue
		}
		if field.Kind == fields.KindString16 && len(raw)%2 != 0 {
			f.report(Diagnostic{
				Kind:    DiagOddString,
				Entry:   index,
				EntryID: id,
				Key:     key,
				Message: fmt.Sprintf("%d-byte string value has a trailing byte", len(raw)),
			})
		}
	}
	return pending
}

func (f *File) report(d Diagnostic) {
	f.diags = append(f.diags, d)
	f.opts.logger.Warn("scratchdb: "+d.Kind.String(),
		"entry", d.Entry,
		"entry_id", d.EntryID,
		"key", d.Key,
		"detail", d.Message)
}

func (f *File) logUnknowns(seen map[string]int) {
	if len(seen) == 0 {
		return
	}
	keys := make([]string, 0, len(seen))
	for _, k := range f.opts.tracker.Keys() {
		if _, ok := seen[k]; ok {
			keys = append(keys, k)
		}
	}
	f.opts.logger.Warn("scratchdb: unknown keys encountered",
		"format", f.format.Name,
		"keys", keys)

	if !f.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, k := range keys {
		if o, ok := f.opts.tracker.Observation(k); ok {
			f.opts.logger.Debug("scratchdb: unknown key detail",
				"key", k,
				"occurrences", seen[k],
				"report", unknown.Describe(o, unknown.ReportOptions{}))
		}
	}
}

// Format returns the file's preset
func (f *File) Format() Format {
	return f.format
}

// Header returns the file header
func (f *File) Header() Header {
	return f.header
}

// Len returns the number of entries
func (f *File) Len() int {
	return len(f.entries)
}

// Entries returns the entries in file order. The slice is a copy; the
// entries are not.
func (f *File) Entries() []*Entry {
	return append([]*Entry(nil), f.entries...)
}

// Entry returns the entry at index i
func (f *File) Entry(i int) (*Entry, error) {
	if i < 0 || i >= len(f.entries) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(f.entries))
	}
	return f.entries[i], nil
}

// SetEntries replaces the entry list
func (f *File) SetEntries(entries []*Entry) {
	f.entries = append([]*Entry(nil), entries...)
}

// Append adds entries at the end of the file
func (f *File) Append(entries ...*Entry) {
	f.entries = append(f.entries, entries...)
}

// Insert places e at index i, shifting later entries
func (f *File) Insert(i int, e *Entry) error {
	if i < 0 || i > len(f.entries) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(f.entries))
	}
	f.entries = append(f.entries, nil)
	copy(f.entries[i+1:], f.entries[i:])
	f.entries[i] = e
	return nil
}

// Remove drops the entry at index i and returns it
func (f *File) Remove(i int) (*Entry, error) {
	e, err := f.Entry(i)
	if err != nil {
		return nil, err
	}
	f.entries = append(f.entries[:i], f.entries[i+1:]...)
	return e, nil
}

// Find returns the index of the first entry whose file identifier is path
func (f *File) Find(path string) (int, *Entry) {
	for i, e := range f.entries {
		if e.ID() == path {
			return i, e
		}
	}
	return -1, nil
}

// MakeEntry builds a stub entry with the file's options. The entry is not
// added to the file.
func (f *File) MakeEntry(path string) *Entry {
	e, diag := makeEntry(path, &f.opts)
	if diag != nil {
		f.diags = append(f.diags, *diag)
	}
	return e
}

// Unknowns returns the tracker that received this file's unknown fields
func (f *File) Unknowns() *unknown.Tracker {
	return f.opts.tracker
}

// Diagnostics returns the non-fatal findings collected so far
func (f *File) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), f.diags...)
}

// Size returns the encoded size of the file
func (f *File) Size() int {
	n := f.header.Size()
	for _, e := range f.entries {
		n += e.Size()
	}
	return n
}

// Bytes returns the encoded file: the header followed by every entry in order
func (f *File) Bytes() []byte {
	buf := f.header.AppendTo(make([]byte, 0, f.Size()))
	for _, e := range f.entries {
		buf = e.AppendTo(buf)
	}
	return buf
}

// WriteTo writes the encoded file to w
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}
