package codec

// Field framing sizes
const (
	KeySize         = 4
	LengthSize      = 4
	FieldHeaderSize = KeySize + LengthSize
)

// Field is one key-tagged, length-prefixed value:
//
//	[Key(4)][Length(4, big-endian)][Value(Length)]
//
// Entries use the same framing for their outer envelope.
type Field struct {
	Key   string
	Value []byte
}

// Size returns the encoded size of the field
func (f Field) Size() int {
	return FieldHeaderSize + len(f.Value)
}

// ReadField reads one field from r. The value aliases r's buffer.
func ReadField(r *Reader) (Field, error) {
	if r.Remaining() < FieldHeaderSize {
		return Field{}, Errorf(ErrTruncated, r.Offset(),
			"partial field header (%d bytes)", r.Remaining())
	}
	key, _ := r.Next(KeySize)
	lenOff := r.Offset()
	rawLen, _ := r.Next(LengthSize)
	length, _ := Uint32(rawLen)

	if uint64(length) > uint64(r.Remaining()) {
		return Field{}, Errorf(ErrTruncated, lenOff,
			"field %q declares %d bytes, %d available", key, length, r.Remaining())
	}
	value, _ := r.Next(int(length))

	return Field{Key: string(key), Value: value}, nil
}

// AppendField appends the encoded field to dst. key must be KeySize bytes.
func AppendField(dst []byte, key string, value []byte) []byte {
	dst = append(dst, key...)
	dst = append(dst, PutUint32(uint32(len(value)))...)
	return append(dst, value...)
}
