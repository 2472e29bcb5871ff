package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		kind Kind
		val  Value
		raw  []byte
	}{
		{
			name: "string",
			kind: KindString16,
			val:  StringValue("mp3"),
			raw:  []byte{0x00, 'm', 0x00, 'p', 0x00, '3'},
		},
		{
			name: "bool true",
			kind: KindBool1,
			val:  IntValue(KindBool1, 1),
			raw:  []byte{0x01},
		},
		{
			name: "bool odd byte",
			kind: KindBool1,
			val:  IntValue(KindBool1, 0x7f),
			raw:  []byte{0x7f},
		},
		{
			name: "int4",
			kind: KindInt4,
			val:  IntValue(KindInt4, 1335865095),
			raw:  []byte{0x4f, 0x9f, 0xaf, 0x07},
		},
		{
			name: "int2",
			kind: KindInt2,
			val:  IntValue(KindInt2, 0x0102),
			raw:  []byte{0x01, 0x02},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Encode(tc.kind, tc.val)
			require.NoError(t, err)
			assert.Equal(t, tc.raw, raw)

			back, err := Decode(tc.kind, raw)
			require.NoError(t, err)
			assert.Equal(t, tc.val, back)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(KindBool1, IntValue(KindBool1, 256))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Encode(KindInt2, IntValue(KindInt2, 0x10000))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Encode(KindString16, IntValue(KindInt4, 1))
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = Encode(KindInt4, StringValue("1"))
	assert.ErrorIs(t, err, ErrKindMismatch)

	raw, err := Encode(KindInt4, IntValue(KindBool1, 1))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, raw)
}

func TestDecode_TooWide(t *testing.T) {
	_, err := Decode(KindInt4, []byte{1, 2, 3, 4, 5})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	v, err := Parse(KindInt4, "1335865095")
	require.NoError(t, err)
	assert.Equal(t, uint32(1335865095), v.Int)

	v, err = Parse(KindString16, "Hey a track title")
	require.NoError(t, err)
	assert.Equal(t, "Hey a track title", v.Str)

	_, err = Parse(KindBool1, "300")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Parse(KindInt2, "abc")
	assert.Error(t, err)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "42", IntValue(KindInt4, 42).String())
	assert.Equal(t, "abc", StringValue("abc").String())
	assert.Equal(t, uint32(42), IntValue(KindInt4, 42).Interface())
	assert.Equal(t, "abc", StringValue("abc").Interface())
}
