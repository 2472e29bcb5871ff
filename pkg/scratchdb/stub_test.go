package scratchdb

import (
	"testing"
	"time"

	"github.com/ssargent/scratchlivedb/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedUnix = 1335865095

func fixedClock() time.Time {
	return time.Unix(fixedUnix, 0)
}

func TestMakeEntry_FieldOrder(t *testing.T) {
	path := "/music/new track.mp3"
	e := MakeEntry(path, WithClock(fixedClock), WithLogger(quietLogger()))

	assert.Equal(t, TrackTag, e.Tag())
	assert.Equal(t, []string{"ttyp", "uadd", "utme", "pfil"}, e.Keys())

	want := record(TrackTag,
		strField("ttyp", "mp3"),
		intField("uadd", fixedUnix),
		intField("utme", fixedUnix),
		strField("pfil", path),
	)
	assert.Equal(t, want, e.Bytes())

	raw, ok := e.Raw("uadd")
	require.True(t, ok)
	assert.Equal(t, []byte{0x4f, 0x9f, 0xaf, 0x07}, raw)
}

func TestMakeEntry_NonASCIIPath(t *testing.T) {
	path := "/música/日本.mp3"
	e := MakeEntry(path, WithClock(fixedClock), WithLogger(quietLogger()))

	raw, ok := e.Raw("pfil")
	require.True(t, ok)
	assert.Equal(t, 2*len([]rune(path)), len(raw))
	// "ú" at index 2, "日本" at 8 and 9
	assert.Equal(t, []byte{0x00, 0xfa}, raw[4:6])
	assert.Equal(t, []byte{0x65, 0xe5, 0x67, 0x2c}, raw[16:20])

	got, ok := e.FileBase()
	assert.True(t, ok)
	assert.Equal(t, path, got)
	assert.Equal(t, path, e.ID())
}

func TestMakeEntry_Extensions(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		opts     []Option
		wantType string
		wantDiag bool
	}{
		{"mp3", "/a/b.mp3", nil, "mp3", false},
		{"upper case", "/a/b.MP3", nil, "mp3", false},
		{"untested extension kept", "/a/b.flac", nil, "flac", true},
		{"no extension", "/a/b", nil, "mp3", true},
		{"hidden file", "/a/.mp3", nil, "mp3", true},
		{"custom allow list", "/a/b.flac", []Option{WithAllowedExtensions("mp3", ".FLAC")}, "flac", false},
		{"custom default", "/a/b", []Option{WithDefaultExtension(".wav")}, "wav", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithClock(fixedClock), WithLogger(quietLogger())}, tt.opts...)
			f := NewFile(Database, opts...)
			e := f.MakeEntry(tt.path)

			typ, ok := e.TrackType()
			require.True(t, ok)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, []string{"ttyp", "uadd", "utme", "pfil"}, e.Keys())
			assert.Zero(t, f.Len(), "MakeEntry must not add the entry")

			diags := f.Diagnostics()
			if !tt.wantDiag {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, DiagUnsupportedExtension, diags[0].Kind)
			assert.Equal(t, -1, diags[0].Entry)
			assert.Equal(t, tt.path, diags[0].EntryID)
		})
	}
}

func TestMakeEntry_UsesWallClock(t *testing.T) {
	before := uint32(time.Now().Unix())
	e := MakeEntry("x.mp3", WithLogger(quietLogger()))
	after := uint32(time.Now().Unix())

	added, ok, err := e.TimeAdded()
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, added, before)
	assert.LessOrEqual(t, added, after)

	modified, _, err := e.TimeModified()
	require.NoError(t, err)
	assert.Equal(t, added, modified)

	assert.Equal(t, codec.PutUint32(added), mustRaw(t, e, "utme"))
}

func mustRaw(t *testing.T, e *Entry, key string) []byte {
	t.Helper()
	raw, ok := e.Raw(key)
	require.True(t, ok, "missing %s", key)
	return raw
}
