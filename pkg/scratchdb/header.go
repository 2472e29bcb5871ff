package scratchdb

import (
	"fmt"

	"github.com/ssargent/scratchlivedb/pkg/codec"
)

const headerMarker = "vrsn"

// Header is the fixed file preamble:
//
//	"vrsn" NUL NUL <version wire string> <type wire string>
//
// The strings carry no length prefix; their extent is known from the preset
// being parsed.
type Header struct {
	Version string
	Type    string
}

// HeaderFor returns the header written for format
func HeaderFor(format Format) Header {
	return Header{Version: format.Version, Type: format.Type}
}

func parseHeader(r *codec.Reader, format Format) (Header, error) {
	off := r.Offset()
	marker, err := codec.ReadCString(r)
	if err != nil {
		// Room for the marker but no terminator: some other kind of file.
		if r.Remaining() > len(headerMarker) {
			return Header{}, codec.Errorf(codec.ErrFormat, off,
				"header did not have expected prefix %q", headerMarker)
		}
		return Header{}, fmt.Errorf("read header marker: %w", err)
	}
	if string(marker) != headerMarker {
		return Header{}, codec.Errorf(codec.ErrFormat, off,
			"header did not have expected prefix %q, found %q", headerMarker, marker)
	}

	off = r.Offset()
	padding, err := codec.ReadCString(r)
	if err != nil {
		return Header{}, fmt.Errorf("read header padding: %w", err)
	}
	if len(padding) != 0 {
		return Header{}, codec.Errorf(codec.ErrFormat, off,
			"expected empty header padding, found %q", padding)
	}

	h := HeaderFor(format)
	if err := codec.MatchLiteral(r, codec.EncodeString(h.Version)); err != nil {
		return Header{}, fmt.Errorf("not a %s file (version %q expected): %w", format, h.Version, err)
	}
	if err := codec.MatchLiteral(r, codec.EncodeString(h.Type)); err != nil {
		return Header{}, fmt.Errorf("not a %s file (type %q expected): %w", format, h.Type, err)
	}
	return h, nil
}

// Bytes returns the encoded header
func (h Header) Bytes() []byte {
	return h.AppendTo(nil)
}

// AppendTo appends the encoded header to dst
func (h Header) AppendTo(dst []byte) []byte {
	dst = append(dst, headerMarker...)
	dst = append(dst, 0, 0)
	dst = append(dst, codec.EncodeString(h.Version)...)
	return append(dst, codec.EncodeString(h.Type)...)
}

// Size returns the encoded header size
func (h Header) Size() int {
	return len(headerMarker) + 2 + len(codec.EncodeString(h.Version)) + len(codec.EncodeString(h.Type))
}
