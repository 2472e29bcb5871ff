package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		key  string
		name string
		kind Kind
	}{
		{key: "pfil", name: "filebase", kind: KindString16},
		{key: "ptrk", name: "filetrack", kind: KindString16},
		{key: "tsng", name: "tracktitle", kind: KindString16},
		{key: "bmis", name: "boolmissing", kind: KindBool1},
		{key: "bply", name: "bply", kind: KindBool1},
		{key: "uadd", name: "inttimeadded", kind: KindInt4},
		{key: "utme", name: "inttimemodified", kind: KindInt4},
		{key: "sbav", name: "sbav", kind: KindInt2},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			f, err := Lookup(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.name, f.Name)
			assert.Equal(t, tc.kind, f.Kind)
			assert.True(t, Known(tc.key))

			byName, err := ByName(tc.name)
			require.NoError(t, err)
			assert.Equal(t, f, byName)
		})
	}
}

func TestLookup_UnknownKey(t *testing.T) {
	for _, key := range []string{"tzzz", "uzzz", "zzzz", ""} {
		_, err := Lookup(key)
		assert.ErrorIs(t, err, ErrUnknownKey, key)
		assert.False(t, Known(key))
	}

	_, err := ByName("nosuchfield")
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestResolve(t *testing.T) {
	f, err := Resolve("tart")
	require.NoError(t, err)
	assert.Equal(t, "trackartist", f.Name)

	f, err = Resolve("trackartist")
	require.NoError(t, err)
	assert.Equal(t, "tart", f.Key)

	_, err = Resolve("zzzz")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestRegistry_KindsFollowPrefixConvention(t *testing.T) {
	all := All()
	require.Len(t, all, 41)

	for _, f := range all {
		assert.Len(t, f.Key, 4, f.Key)
		guessed, err := GuessKind(f.Key)
		require.NoError(t, err, f.Key)
		assert.Equal(t, f.Kind, guessed, f.Key)
	}
}

func TestGuessKind(t *testing.T) {
	testCases := []struct {
		key     string
		want    Kind
		wantErr bool
	}{
		{key: "tzzz", want: KindString16},
		{key: "pzzz", want: KindString16},
		{key: "bzzz", want: KindBool1},
		{key: "uzzz", want: KindInt4},
		{key: "szzz", want: KindInt2},
		{key: "zzzz", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			got, err := GuessKind(tc.key)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				assert.Contains(t, err.Error(), "unknown type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	require.Len(t, names, len(All()))
	assert.IsIncreasing(t, names)
}
