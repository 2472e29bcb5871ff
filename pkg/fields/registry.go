package fields

import (
	"errors"
	"fmt"
	"sort"
)

// Registry errors
var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrUnknownType  = errors.New("unknown type")
	ErrUnknownName  = errors.New("unknown field name")
	ErrKindMismatch = errors.New("kind mismatch")
	ErrOutOfRange   = errors.New("value out of range")
)

// Kind is the wire encoding of a field value
type Kind int

const (
	KindString16 Kind = iota + 1 // Two bytes per character, big-endian
	KindBool1                    // One raw byte
	KindInt4                     // 32-bit big-endian integer
	KindInt2                     // 16-bit big-endian integer
)

func (k Kind) String() string {
	switch k {
	case KindString16:
		return "string16"
	case KindBool1:
		return "bool1"
	case KindInt4:
		return "int4"
	case KindInt2:
		return "int2"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Integer reports whether values of this kind are numbers
func (k Kind) Integer() bool {
	return k == KindBool1 || k == KindInt4 || k == KindInt2
}

// Field describes one registered field key
type Field struct {
	Key         string // Four character wire key
	Name        string // Accessor name, unique across the registry
	Kind        Kind
	Description string
}

// registry lists every known key. Flags marked UNKNOWN have no confirmed
// meaning and are carried as raw bytes.
var registry = []Field{
	// paths
	{"pdir", "filedir", KindString16, "file directory"},
	{"ptrk", "filetrack", KindString16, "file name in crate files"},
	{"pfil", "filebase", KindString16, "file name in database files"},

	// strings
	{"tadd", "trackadded", KindString16, "date added"},
	{"tart", "trackartist", KindString16, "artist"},
	{"talb", "trackalbum", KindString16, "album name"},
	{"tbit", "trackbitrate", KindString16, "bitrate"},
	{"tbpm", "trackbpm", KindString16, "bpm"},
	{"tcmp", "trackcomposer", KindString16, "composer"},
	{"tcom", "trackcomment", KindString16, "comment"},
	{"tcor", "trackcorrupt", KindString16, "description of a corruption problem"},
	{"tgen", "trackgenre", KindString16, "genre"},
	{"tgrp", "trackgrouping", KindString16, "grouping"},
	{"tkey", "trackkey", KindString16, "musical key"},
	{"tlbl", "tracklabel", KindString16, "release label"},
	{"tlen", "tracklength", KindString16, "length"},
	{"trmx", "trackremixer", KindString16, "remixer"},
	{"tsng", "tracktitle", KindString16, "song name"},
	{"tsiz", "tracksize", KindString16, "size"},
	{"tsmp", "tracksamplerate", KindString16, "sample rate"},
	{"ttyp", "tracktype", KindString16, "file type (mp3, wav, ...)"},
	{"ttyr", "trackyear", KindString16, "year"},

	// booleans
	{"bmis", "boolmissing", KindBool1, "track is missing"},
	{"bcrt", "boolcorrupt", KindBool1, "track is corrupt or has invalid audio data"},

	// integers
	{"uadd", "inttimeadded", KindInt4, "time added, unix seconds"},
	{"utkn", "inttracknum", KindInt4, "track number"},
	{"ulbl", "intcolor", KindInt4, "label color, 0RGB"},
	{"ufsb", "intfilesize", KindInt4, "file size in bytes"},
	{"udsc", "intdisknum", KindInt4, "disc number"},
	{"utme", "inttimemodified", KindInt4, "UNKNOWN: a unix time, set with uadd on new tracks"},

	// flags without a confirmed meaning
	{"bbgl", "bbgl", KindBool1, "UNKNOWN: 0 on all observed tracks"},
	{"bhrt", "bhrt", KindBool1, "UNKNOWN: 1 except on missing tracks"},
	{"biro", "biro", KindBool1, "UNKNOWN: 0 on all observed tracks"},
	{"bitu", "bitu", KindBool1, "UNKNOWN: 0 on all observed tracks"},
	{"buns", "buns", KindBool1, "UNKNOWN: 0 on all observed tracks"},
	{"bwlb", "bwlb", KindBool1, "UNKNOWN: 0 on all observed tracks"},
	{"bwll", "bwll", KindBool1, "UNKNOWN: 0 on all observed tracks"},
	{"blop", "blop", KindBool1, "UNKNOWN: 0 except on missing tracks"},
	{"bovc", "bovc", KindBool1, "UNKNOWN: possibly whether the track was ever played"},
	{"bply", "bply", KindBool1, "UNKNOWN: possibly whether the track shows as played"},
	{"sbav", "sbav", KindInt2, "UNKNOWN: related to serato tags in the audio file"},
}

var (
	byKey  = make(map[string]Field, len(registry))
	byName = make(map[string]Field, len(registry))
)

func init() {
	for _, f := range registry {
		if _, dup := byKey[f.Key]; dup {
			panic("fields: duplicate key " + f.Key)
		}
		if _, dup := byName[f.Name]; dup {
			panic("fields: duplicate name " + f.Name)
		}
		byKey[f.Key] = f
		byName[f.Name] = f
	}
}

// Lookup returns the registered field for key, or ErrUnknownKey
func Lookup(key string) (Field, error) {
	f, ok := byKey[key]
	if !ok {
		return Field{}, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return f, nil
}

// Known reports whether key is in the registry
func Known(key string) bool {
	_, ok := byKey[key]
	return ok
}

// ByName returns the field with the given accessor name
func ByName(name string) (Field, error) {
	f, ok := byName[name]
	if !ok {
		return Field{}, fmt.Errorf("%w %q", ErrUnknownName, name)
	}
	return f, nil
}

// Resolve accepts either a wire key or an accessor name.
func Resolve(keyOrName string) (Field, error) {
	if f, ok := byKey[keyOrName]; ok {
		return f, nil
	}
	if f, ok := byName[keyOrName]; ok {
		return f, nil
	}
	return Field{}, fmt.Errorf("%w %q", ErrUnknownKey, keyOrName)
}

// All returns every registered field in registry order
func All() []Field {
	out := make([]Field, len(registry))
	copy(out, registry)
	return out
}

// Names returns the sorted accessor names
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, f := range registry {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// GuessKind infers the kind of an unregistered key from its first letter.
func GuessKind(key string) (Kind, error) {
	if key == "" {
		return 0, fmt.Errorf("%w for empty key", ErrUnknownType)
	}
	switch key[0] {
	case 'p', 't':
		return KindString16, nil
	case 'b':
		return KindBool1, nil
	case 'u':
		return KindInt4, nil
	case 's':
		return KindInt2, nil
	default:
		return 0, fmt.Errorf("%w for key %q", ErrUnknownType, key)
	}
}
