// Package codec provides the low-level building blocks of the Scratch Live
// database and crate file format.
//
// The format is big-endian throughout and has no byte order marker. Every
// structure above the file header is built from one framing primitive, the
// field:
//
//	[Key(4)][Length(4)][Value(Length)]
//
// Fields:
//   - Key: four ASCII bytes naming the field (for example "pfil" or "uadd")
//   - Length: 32-bit unsigned integer, big-endian, counting Value bytes only
//   - Value: opaque bytes, interpreted by the field registry in package fields
//
// A track record wraps a run of fields in one more field whose key is the
// record tag ("otrk") and whose length covers all inner fields.
//
// # Wire Strings
//
// Text values and the header strings are stored as UTF-16 big-endian without
// a byte order mark, two bytes per character:
//
//	"81.0" -> 00 38 00 31 00 2e 00 30
//
// DecodeString tolerates a lone trailing byte: it is dropped and reported to
// the caller, never treated as fatal.
//
// # Error Handling
//
// Reading functions return *ParseError values that wrap one of ErrFormat,
// ErrTruncated or ErrDuplicateField together with the absolute offset of the
// problem:
//
//	_, err := codec.ReadField(r)
//	if errors.Is(err, codec.ErrTruncated) {
//	    // the declared length runs past the end of the buffer
//	}
//
// # Usage
//
//	buf := codec.AppendField(nil, "tsng", codec.EncodeString("Song"))
//
//	r := codec.NewReader(buf)
//	f, err := codec.ReadField(r)
//	if err != nil {
//	    return err
//	}
//	title, _ := codec.DecodeString(f.Value)
//
// # Thread Safety
//
// The package has no shared state. A Reader must not be used from more than
// one goroutine at a time.
package codec
