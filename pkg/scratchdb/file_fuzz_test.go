//go:build fuzz
// +build fuzz

package scratchdb

import (
	"bytes"
	"testing"
)

// FuzzParse checks that anything Parse accepts encodes back to the same bytes
func FuzzParse(f *testing.F) {
	f.Add(sampleDatabase())
	f.Add(fileBytes(Database))
	f.Add(fileBytes(Database, record("oxxx", field("zzzz", []byte{1, 2, 3}))))

	f.Fuzz(func(t *testing.T, data []byte) {
		file, err := Parse(data, Database, WithLogger(quietLogger()))
		if err != nil {
			return
		}
		if got := file.Bytes(); !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch:\n got %x\nwant %x", got, data)
		}
	})
}
