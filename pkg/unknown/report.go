package unknown

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ssargent/scratchlivedb/pkg/fields"
)

const (
	defaultMaxValues  = 20
	defaultMaxEntries = 20
	entryWidth        = 45
)

// ReportOptions bounds the size of a report
type ReportOptions struct {
	MaxValues  int // Distinct values shown per key (default 20)
	MaxEntries int // Entry identifiers shown per value (default 20)
}

// FormatValue renders raw the way the key's prefix suggests, or as a quoted
// byte string when the prefix is not recognised.
func FormatValue(key string, raw []byte) string {
	kind, err := fields.GuessKind(key)
	if err != nil {
		return fmt.Sprintf("%q", raw)
	}
	v, err := fields.Decode(kind, raw)
	if err != nil {
		return fmt.Sprintf("%q", raw)
	}
	if kind == fields.KindString16 {
		return fmt.Sprintf("%q", v.Str)
	}
	return v.String()
}

// Describe renders one observation as text
func Describe(o *Observation, opts ReportOptions) string {
	maxValues := opts.MaxValues
	if maxValues <= 0 {
		maxValues = defaultMaxValues
	}
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Unknown type: %s\n", o.Key)

	for i, s := range o.samples {
		if i >= maxValues {
			fmt.Fprintf(&b, "  ... %d more values\n", len(o.samples)-maxValues)
			break
		}
		entries := append([]string(nil), s.Entries...)
		sort.Strings(entries)

		shown := entries
		if len(shown) > maxEntries {
			shown = shown[:maxEntries]
		}
		for j, e := range shown {
			if j > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "  %-*s", entryWidth, tail(e, entryWidth))
		}
		others := fmt.Sprintf("(and %d others)", len(entries)-len(shown))
		fmt.Fprintf(&b, " %-20s : %s\n", others, FormatValue(o.Key, s.Raw))
	}
	return b.String()
}

// Report writes a description of every tracked key, sorted by key
func (t *Tracker) Report(w io.Writer, opts ReportOptions) error {
	for _, key := range t.Keys() {
		if _, err := io.WriteString(w, Describe(t.observations[key], opts)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
