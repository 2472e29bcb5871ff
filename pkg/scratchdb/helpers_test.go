package scratchdb

import (
	"io"
	"log/slog"

	"github.com/ssargent/scratchlivedb/pkg/codec"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func field(key string, value []byte) []byte {
	return codec.AppendField(nil, key, value)
}

func strField(key, s string) []byte {
	return field(key, codec.EncodeString(s))
}

func intField(key string, n uint32) []byte {
	return field(key, codec.PutUint32(n))
}

func record(tag string, fields ...[]byte) []byte {
	var body []byte
	for _, f := range fields {
		body = append(body, f...)
	}
	return codec.AppendField(nil, tag, body)
}

func fileBytes(format Format, records ...[]byte) []byte {
	out := HeaderFor(format).Bytes()
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

// sampleDatabase is a two track library with every field kind represented.
func sampleDatabase() []byte {
	return fileBytes(Database,
		record(TrackTag,
			strField("ttyp", "mp3"),
			strField("pfil", "/music/one.mp3"),
			strField("tsng", "One"),
			strField("tart", "Artist"),
			intField("uadd", 1335865095),
			intField("utme", 1335865095),
			field("bmis", []byte{0}),
			field("sbav", []byte{0x01, 0x02}),
		),
		record(TrackTag,
			strField("ttyp", "mp3"),
			strField("pfil", "/music/two.mp3"),
			strField("tbpm", "128.00"),
			field("bcrt", []byte{1}),
			intField("ufsb", 4096),
		),
	)
}

func sampleCrate() []byte {
	return fileBytes(Crate,
		record(TrackTag, strField("ptrk", "music/one.mp3")),
		record(TrackTag, strField("ptrk", "music/two.mp3")),
	)
}
