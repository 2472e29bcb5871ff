package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// wireEncoding is UTF-16 big-endian without a byte order mark. Characters in
// the Basic Multilingual Plane become exactly one 16-bit unit.
var wireEncoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// PutUint32 encodes n as 4 big-endian bytes
func PutUint32(n uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

// Uint32 decodes exactly 4 big-endian bytes
func Uint32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: expected 4 bytes, got %d", ErrFormat, len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint decodes a big-endian unsigned value of 0 to 4 bytes. The single byte
// and two byte field kinds share it with the four byte kind.
func Uint(b []byte) (uint32, error) {
	if len(b) > 4 {
		return 0, fmt.Errorf("%w: %d bytes is too wide for an integer", ErrFormat, len(b))
	}
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v, nil
}

// ReadCString returns the bytes up to the next NUL and consumes the NUL.
func ReadCString(r *Reader) ([]byte, error) {
	rest := r.buf[r.off:]
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		return nil, Errorf(ErrTruncated, r.Offset(), "unterminated string")
	}
	s := rest[:i]
	r.off += i + 1
	return s, nil
}

// MatchLiteral consumes len(want) bytes and fails unless they equal want.
func MatchLiteral(r *Reader, want []byte) error {
	off := r.Offset()
	got, err := r.Next(len(want))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return Errorf(ErrFormat, off, "expected %q, found %q", want, got)
	}
	return nil
}

// EncodeString converts s to the wire string format.
func EncodeString(s string) []byte {
	b, err := wireEncoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// The UTF-16 encoder substitutes invalid input instead of failing.
		panic(fmt.Sprintf("codec: encode wire string: %v", err))
	}
	return b
}

// DecodeString converts a wire string to text. A lone trailing byte cannot
// form a character; it is dropped and reported through the second result.
func DecodeString(b []byte) (string, bool) {
	odd := len(b)%2 != 0
	if odd {
		b = b[:len(b)-1]
	}
	s, err := wireEncoding.NewDecoder().Bytes(b)
	if err != nil {
		panic(fmt.Sprintf("codec: decode wire string: %v", err))
	}
	return string(s), odd
}
