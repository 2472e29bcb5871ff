package fields

import (
	"fmt"
	"strconv"

	"github.com/ssargent/scratchlivedb/pkg/codec"
)

// Value is a decoded field value. Str is set for KindString16, Int for the
// integer kinds.
type Value struct {
	Kind Kind
	Str  string
	Int  uint32
}

// StringValue wraps s as a KindString16 value
func StringValue(s string) Value {
	return Value{Kind: KindString16, Str: s}
}

// IntValue wraps n as a value of the given integer kind
func IntValue(kind Kind, n uint32) Value {
	return Value{Kind: kind, Int: n}
}

// Interface returns the value as a string or uint32
func (v Value) Interface() interface{} {
	if v.Kind == KindString16 {
		return v.Str
	}
	return v.Int
}

func (v Value) String() string {
	if v.Kind == KindString16 {
		return v.Str
	}
	return strconv.FormatUint(uint64(v.Int), 10)
}

// Decode interprets raw bytes as kind. Wire strings with a lone trailing
// byte decode without error; use codec.DecodeString to detect that case.
func Decode(kind Kind, raw []byte) (Value, error) {
	switch kind {
	case KindString16:
		s, _ := codec.DecodeString(raw)
		return StringValue(s), nil
	case KindBool1, KindInt4, KindInt2:
		n, err := codec.Uint(raw)
		if err != nil {
			return Value{}, fmt.Errorf("decode %s: %w", kind, err)
		}
		return IntValue(kind, n), nil
	default:
		return Value{}, fmt.Errorf("decode: %w %s", ErrUnknownType, kind)
	}
}

// Encode produces the wire bytes for v stored as kind. Integer values may be
// stored in any integer kind they fit in.
func Encode(kind Kind, v Value) ([]byte, error) {
	if (kind == KindString16) != (v.Kind == KindString16) {
		return nil, fmt.Errorf("%w: cannot store %s as %s", ErrKindMismatch, v.Kind, kind)
	}

	switch kind {
	case KindString16:
		return codec.EncodeString(v.Str), nil
	case KindInt4:
		return codec.PutUint32(v.Int), nil
	case KindInt2:
		if v.Int > 0xffff {
			return nil, fmt.Errorf("%w: %d does not fit in %s", ErrOutOfRange, v.Int, kind)
		}
		return codec.PutUint32(v.Int)[2:], nil
	case KindBool1:
		if v.Int > 0xff {
			return nil, fmt.Errorf("%w: %d does not fit in %s", ErrOutOfRange, v.Int, kind)
		}
		return []byte{byte(v.Int)}, nil
	default:
		return nil, fmt.Errorf("encode: %w %s", ErrUnknownType, kind)
	}
}

// Parse converts user input text into a value of the given kind.
func Parse(kind Kind, text string) (Value, error) {
	if kind == KindString16 {
		return StringValue(text), nil
	}
	n, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		return Value{}, fmt.Errorf("parse %s value %q: %w", kind, text, err)
	}
	v := IntValue(kind, uint32(n))
	if _, err := Encode(kind, v); err != nil {
		return Value{}, err
	}
	return v, nil
}
