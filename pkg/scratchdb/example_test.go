package scratchdb_test

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

func ExampleMakeEntry() {
	clock := func() time.Time { return time.Unix(1335865095, 0) }
	e := scratchdb.MakeEntry("/music/new.mp3", scratchdb.WithClock(clock))

	fmt.Println(e.Keys())
	added, _, _ := e.TimeAdded()
	fmt.Println(added)
	// Output:
	// [ttyp uadd utme pfil]
	// 1335865095
}

func ExampleParse() {
	f := scratchdb.NewFile(scratchdb.Crate)
	e := scratchdb.NewTrack()
	_ = e.SetFileTrack("music/one.mp3")
	f.Append(e)

	var buf bytes.Buffer
	_, _ = f.WriteTo(&buf)

	parsed, err := scratchdb.Parse(buf.Bytes(), scratchdb.Crate)
	if err != nil {
		fmt.Println("Parse error:", err)
		return
	}
	first, _ := parsed.Entry(0)
	fmt.Printf("%d entry, %s\n", parsed.Len(), first.ID())
	// Output: 1 entry, music/one.mp3
}
