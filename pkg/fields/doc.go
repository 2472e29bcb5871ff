// Package fields is the static registry of track record field keys.
//
// Each key maps to one of four wire kinds and an accessor name:
//
//	KindString16  p*, t* keys   wire string, two bytes per character
//	KindBool1     b* keys       one raw byte, any value round-trips
//	KindInt4      u* keys       32-bit big-endian integer
//	KindInt2      sbav          16-bit big-endian integer
//
// Lookup fails with ErrUnknownKey for keys outside the registry. Parsers
// treat that as a signal to record the key for diagnostics, never as a
// fatal error. GuessKind applies the prefix convention above to such keys.
package fields
