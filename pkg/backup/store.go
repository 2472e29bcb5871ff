// Package backup keeps snapshots of library files in a pebble store so a
// rewrite can be undone.
package backup

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned for snapshot ids the store does not hold
var ErrNotFound = errors.New("snapshot not found")

var (
	metaPrefix = []byte("meta/")
	dataPrefix = []byte("data/")
)

// Snapshot describes one stored copy of a file
type Snapshot struct {
	ID      ksuid.KSUID
	Source  string // absolute path of the file that was copied
	Format  string // crate or database
	Reason  string // command that replaced the file
	Size    int
	Entries int
	Created time.Time
}

// Store is a pebble backed snapshot store. Snapshot ids are ksuids issued in
// strictly increasing order, so key order is creation order.
type Store struct {
	db   *pebble.DB
	mu   sync.Mutex
	last ksuid.KSUID
}

// Open opens or creates a store in dir
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open backup store: %w", err)
	}

	s := &Store{db: db}
	last, err := s.lastID()
	if err != nil {
		db.Close()
		return nil, err
	}
	s.last = last
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) lastID() (ksuid.KSUID, error) {
	iter, err := s.db.NewIter(prefixBounds(metaPrefix))
	if err != nil {
		return ksuid.Nil, fmt.Errorf("scan backup store: %w", err)
	}
	defer iter.Close()

	if !iter.Last() {
		return ksuid.Nil, nil
	}
	return ksuid.FromBytes(iter.Key()[len(metaPrefix):])
}

// nextID returns a fresh ksuid greater than every id issued before
func (s *Store) nextID() ksuid.KSUID {
	id := ksuid.New()
	if ksuid.Compare(id, s.last) <= 0 {
		id = s.last.Next()
	}
	s.last = id
	return id
}

// Save stores data as a new snapshot. ID, Size and Created are filled in.
func (s *Store) Save(ctx context.Context, snap Snapshot, data []byte) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap.ID = s.nextID()
	snap.Size = len(data)
	if snap.Created.IsZero() {
		snap.Created = time.Now().UTC()
	}

	meta, err := encodeMeta(snap)
	if err != nil {
		return Snapshot{}, err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key(metaPrefix, snap.ID), meta, nil); err != nil {
		return Snapshot{}, err
	}
	if err := batch.Set(key(dataPrefix, snap.ID), data, nil); err != nil {
		return Snapshot{}, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return Snapshot{}, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}

// List returns snapshots oldest first. An empty source lists every file.
func (s *Store) List(ctx context.Context, source string) ([]Snapshot, error) {
	iter, err := s.db.NewIter(prefixBounds(metaPrefix))
	if err != nil {
		return nil, fmt.Errorf("scan backup store: %w", err)
	}
	defer iter.Close()

	var out []Snapshot
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := decodeMeta(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("snapshot %x: %w", iter.Key()[len(metaPrefix):], err)
		}
		if source == "" || snap.Source == source {
			out = append(out, snap)
		}
	}
	return out, iter.Error()
}

// Get returns a snapshot and its bytes
func (s *Store) Get(id ksuid.KSUID) (Snapshot, []byte, error) {
	meta, err := s.read(key(metaPrefix, id))
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	snap, err := decodeMeta(meta)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	data, err := s.read(key(dataPrefix, id))
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("snapshot %s data: %w", id, err)
	}
	return snap, data, nil
}

// read copies the value out before the closer releases it
func (s *Store) read(k []byte) ([]byte, error) {
	value, closer, err := s.db.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), value...), nil
}

// Delete removes a snapshot
func (s *Store) Delete(id ksuid.KSUID) error {
	if _, err := s.read(key(metaPrefix, id)); err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete(key(metaPrefix, id), nil); err != nil {
		return err
	}
	if err := batch.Delete(key(dataPrefix, id), nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Prune keeps the newest keep snapshots of each source and deletes the rest.
// It returns the deleted snapshots.
func (s *Store) Prune(ctx context.Context, source string, keep int) ([]Snapshot, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep must not be negative, got %d", keep)
	}
	all, err := s.List(ctx, source)
	if err != nil {
		return nil, err
	}

	bySource := make(map[string][]Snapshot)
	for _, snap := range all {
		bySource[snap.Source] = append(bySource[snap.Source], snap)
	}

	var removed []Snapshot
	for _, snaps := range bySource {
		if len(snaps) <= keep {
			continue
		}
		for _, snap := range snaps[:len(snaps)-keep] {
			if err := s.Delete(snap.ID); err != nil {
				return removed, err
			}
			removed = append(removed, snap)
		}
	}
	sort.Slice(removed, func(i, j int) bool {
		return ksuid.Compare(removed[i].ID, removed[j].ID) < 0
	})
	return removed, nil
}

func key(prefix []byte, id ksuid.KSUID) []byte {
	return append(append([]byte(nil), prefix...), id.Bytes()...)
}

func prefixBounds(prefix []byte) *pebble.IterOptions {
	upper := append([]byte(nil), prefix...)
	upper[len(upper)-1]++
	return &pebble.IterOptions{LowerBound: prefix, UpperBound: upper}
}

func encodeMeta(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot metadata: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeMeta(b []byte) (Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot metadata: %w", err)
	}
	return snap, nil
}
