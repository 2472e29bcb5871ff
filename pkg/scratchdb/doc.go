// Package scratchdb reads and writes Scratch Live library databases and
// crate files.
//
// Both kinds share one layout, a header followed by track entries:
//
//	"vrsn" 00 00 <version> <type> [Entry]...
//
// Only the two header strings differ; see Crate and Database. Parsing keeps
// every field of every entry as raw bytes in its original order, so a file
// that is read and written back unchanged is byte-identical, including
// fields this package does not know.
//
// Unknown field keys, untested file extensions on stub entries and similar
// oddities are reported as Diagnostic values and logged, never returned as
// errors. Structural damage (bad header, truncated entry, a key repeated in
// one entry) aborts the parse.
//
// Example:
//
//	f, err := scratchdb.Open(r, scratchdb.Database)
//	if err != nil {
//		return err
//	}
//	f.Append(f.MakeEntry("/music/new track.mp3"))
//	_, err = f.WriteTo(w)
package scratchdb
