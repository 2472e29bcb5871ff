package scratchdb

import (
	"errors"
	"fmt"

	"github.com/ssargent/scratchlivedb/pkg/codec"
	"github.com/ssargent/scratchlivedb/pkg/fields"
)

// TrackTag is the record tag of a track entry
const TrackTag = "otrk"

// ErrInvalidKey is returned when a field key is not exactly four bytes
var ErrInvalidKey = errors.New("invalid field key")

// Entry is one track record: a tag and an ordered set of raw field values.
//
// Field order is the order keys were first seen or first set, and is kept on
// serialization so an unmodified entry encodes to its original bytes.
type Entry struct {
	tag    string
	keys   []string
	values map[string][]byte
}

// NewEntry creates an empty entry with the given record tag, which must be
// four bytes like a field key.
func NewEntry(tag string) (*Entry, error) {
	if len(tag) != codec.KeySize {
		return nil, fmt.Errorf("%w %q: record tag must be %d bytes", ErrInvalidKey, tag, codec.KeySize)
	}
	return newEntry(tag), nil
}

// NewTrack creates an empty track entry
func NewTrack() *Entry {
	return newEntry(TrackTag)
}

func newEntry(tag string) *Entry {
	return &Entry{tag: tag, values: make(map[string][]byte)}
}

func readEntry(r *codec.Reader) (*Entry, error) {
	outer, err := codec.ReadField(r)
	if err != nil {
		return nil, fmt.Errorf("read entry envelope: %w", err)
	}

	e := newEntry(outer.Key)
	body := codec.NewReaderAt(outer.Value, r.Offset()-len(outer.Value))
	for body.Remaining() > 0 {
		off := body.Offset()
		f, err := codec.ReadField(body)
		if err != nil {
			return nil, fmt.Errorf("read entry field: %w", err)
		}
		if _, dup := e.values[f.Key]; dup {
			return nil, codec.Errorf(codec.ErrDuplicateField, off,
				"field %q appears twice in one entry", f.Key)
		}
		e.keys = append(e.keys, f.Key)
		e.values[f.Key] = f.Value
	}
	return e, nil
}

// Tag returns the record tag
func (e *Entry) Tag() string {
	return e.tag
}

// Keys returns the field keys in serialization order
func (e *Entry) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Len returns the number of fields
func (e *Entry) Len() int {
	return len(e.keys)
}

// Has reports whether the entry carries key
func (e *Entry) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// Raw returns the stored bytes for key. The slice must not be modified.
func (e *Entry) Raw(key string) ([]byte, bool) {
	v, ok := e.values[key]
	return v, ok
}

// SetRaw stores raw bytes for key. A new key is appended to the field order;
// an existing key keeps its position.
func (e *Entry) SetRaw(key string, raw []byte) error {
	if len(key) != codec.KeySize {
		return fmt.Errorf("%w %q: must be %d bytes", ErrInvalidKey, key, codec.KeySize)
	}
	if e.values == nil {
		e.values = make(map[string][]byte)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = append([]byte{}, raw...)
	return nil
}

// Delete removes key from the entry
func (e *Entry) Delete(key string) bool {
	if _, ok := e.values[key]; !ok {
		return false
	}
	delete(e.values, key)
	for i, k := range e.keys {
		if k == key {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			break
		}
	}
	return true
}

// KindOf returns the registered kind of key, falling back to the prefix
// convention for keys outside the registry.
func KindOf(key string) (fields.Kind, error) {
	if f, err := fields.Lookup(key); err == nil {
		return f.Kind, nil
	}
	return fields.GuessKind(key)
}

// Get decodes the value stored for key. Writing the value back with Set
// reproduces the stored bytes except for two string cases: a lone trailing
// byte (reported as DiagOddString) is dropped, and an unpaired UTF-16
// surrogate comes back as U+FFFD. Raw and SetRaw keep such values intact.
func (e *Entry) Get(key string) (fields.Value, bool, error) {
	raw, ok := e.values[key]
	if !ok {
		return fields.Value{}, false, nil
	}
	kind, err := KindOf(key)
	if err != nil {
		return fields.Value{}, true, err
	}
	v, err := fields.Decode(kind, raw)
	if err != nil {
		return fields.Value{}, true, fmt.Errorf("field %q: %w", key, err)
	}
	return v, true, nil
}

// Set encodes v with the kind registered for key and stores it
func (e *Entry) Set(key string, v fields.Value) error {
	kind, err := KindOf(key)
	if err != nil {
		return err
	}
	raw, err := fields.Encode(kind, v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return e.SetRaw(key, raw)
}

// StringField returns a string-kind field. It decodes the way Get does.
func (e *Entry) StringField(key string) (string, bool) {
	raw, ok := e.values[key]
	if !ok {
		return "", false
	}
	s, _ := codec.DecodeString(raw)
	return s, true
}

// SetStringField stores s in a string-kind field
func (e *Entry) SetStringField(key, s string) error {
	return e.Set(key, fields.StringValue(s))
}

// IntField returns an integer-kind field (bool, int2 or int4)
func (e *Entry) IntField(key string) (uint32, bool, error) {
	v, ok, err := e.Get(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if !v.Kind.Integer() {
		return 0, true, fmt.Errorf("field %q: %w: %s is not an integer", key, fields.ErrKindMismatch, v.Kind)
	}
	return v.Int, true, nil
}

// SetIntField stores n in an integer-kind field
func (e *Entry) SetIntField(key string, n uint32) error {
	kind, err := KindOf(key)
	if err != nil {
		return err
	}
	if !kind.Integer() {
		return fmt.Errorf("field %q: %w: %s is not an integer", key, fields.ErrKindMismatch, kind)
	}
	return e.Set(key, fields.IntValue(kind, n))
}

// ID returns the entry's file identifier: the database file name, or the
// crate track name, or "" when neither is set.
func (e *Entry) ID() string {
	if s, ok := e.StringField("pfil"); ok {
		return s
	}
	if s, ok := e.StringField("ptrk"); ok {
		return s
	}
	return ""
}

// Size returns the encoded size of the entry
func (e *Entry) Size() int {
	return codec.FieldHeaderSize + e.bodySize()
}

func (e *Entry) bodySize() int {
	n := 0
	for _, k := range e.keys {
		n += codec.FieldHeaderSize + len(e.values[k])
	}
	return n
}

// Bytes returns the encoded entry
func (e *Entry) Bytes() []byte {
	return e.AppendTo(make([]byte, 0, e.Size()))
}

// AppendTo appends the encoded entry to dst:
//
//	[Tag(4)][BodyLength(4)][Field]...
func (e *Entry) AppendTo(dst []byte) []byte {
	dst = append(dst, e.tag...)
	dst = append(dst, codec.PutUint32(uint32(e.bodySize()))...)
	for _, k := range e.keys {
		dst = codec.AppendField(dst, k, e.values[k])
	}
	return dst
}

// Clone returns a deep copy of the entry
func (e *Entry) Clone() *Entry {
	c := newEntry(e.tag)
	for _, k := range e.keys {
		c.keys = append(c.keys, k)
		c.values[k] = append([]byte{}, e.values[k]...)
	}
	return c
}
