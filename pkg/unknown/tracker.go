// Package unknown collects field keys that are not in the field registry,
// together with example values and the records they came from, so a new
// key's purpose can be worked out from real libraries.
package unknown

import (
	"sort"
)

// Sample is one distinct raw value seen for an unknown key
type Sample struct {
	Raw     []byte
	Entries []string // Identifiers of the records carrying this value
}

// Observation gathers every distinct value seen for one key
type Observation struct {
	Key     string
	samples []*Sample
	index   map[string]int
}

// Samples returns the distinct values in first-seen order
func (o *Observation) Samples() []Sample {
	out := make([]Sample, 0, len(o.samples))
	for _, s := range o.samples {
		out = append(out, Sample{
			Raw:     append([]byte(nil), s.Raw...),
			Entries: append([]string(nil), s.Entries...),
		})
	}
	return out
}

// Count returns the total number of records that carried the key
func (o *Observation) Count() int {
	n := 0
	for _, s := range o.samples {
		n += len(s.Entries)
	}
	return n
}

// Tracker aggregates unknown keys across one or more parses. It is not safe
// for concurrent use; callers share one tracker between loads to aggregate,
// or call Reset to isolate them.
type Tracker struct {
	observations map[string]*Observation
}

// New creates an empty tracker
func New() *Tracker {
	return &Tracker{observations: make(map[string]*Observation)}
}

// Track records that entryID carried key with value raw. raw is copied.
func (t *Tracker) Track(entryID, key string, raw []byte) {
	if t.observations == nil {
		t.observations = make(map[string]*Observation)
	}
	o, ok := t.observations[key]
	if !ok {
		o = &Observation{Key: key, index: make(map[string]int)}
		t.observations[key] = o
	}

	i, ok := o.index[string(raw)]
	if !ok {
		i = len(o.samples)
		o.index[string(raw)] = i
		o.samples = append(o.samples, &Sample{Raw: append([]byte(nil), raw...)})
	}
	o.samples[i].Entries = append(o.samples[i].Entries, entryID)
}

// Keys returns the tracked keys in sorted order
func (t *Tracker) Keys() []string {
	keys := make([]string, 0, len(t.observations))
	for k := range t.observations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Observation returns what was seen for key
func (t *Tracker) Observation(key string) (*Observation, bool) {
	o, ok := t.observations[key]
	return o, ok
}

// Len returns the number of distinct unknown keys
func (t *Tracker) Len() int {
	return len(t.observations)
}

// Reset forgets everything tracked so far
func (t *Tracker) Reset() {
	t.observations = make(map[string]*Observation)
}
