package codec

// Reader is a bounded cursor over an in-memory buffer. Offsets are reported
// relative to the start of the enclosing file so errors from nested readers
// still point at the right byte.
type Reader struct {
	buf  []byte
	off  int
	base int
}

// NewReader creates a reader positioned at the start of buf
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// NewReaderAt creates a reader over buf, which starts at absolute offset base
func NewReaderAt(buf []byte, base int) *Reader {
	return &Reader{buf: buf, base: base}
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Offset returns the absolute offset of the next unread byte
func (r *Reader) Offset() int {
	return r.base + r.off
}

// Next consumes and returns the next n bytes. The returned slice aliases the
// underlying buffer.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, Errorf(ErrTruncated, r.Offset(),
			"need %d bytes, %d available", n, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Sub consumes the next n bytes and returns a reader limited to them.
func (r *Reader) Sub(n int) (*Reader, error) {
	start := r.Offset()
	b, err := r.Next(n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, base: start}, nil
}
