// Package library loads and rewrites Scratch Live files on disk. Rewrites
// hold an OS lock on "<file>.lock", snapshot the previous bytes and replace
// the file atomically.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/scratchlivedb/pkg/backup"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// ErrLocked is returned when another process holds the file lock
var ErrLocked = errors.New("library file is locked")

const lockRetryDelay = 100 * time.Millisecond

// Options configures a Library
type Options struct {
	Backups     *backup.Store // nil disables snapshots
	Keep        int           // snapshots kept per file, 0 keeps all
	LockTimeout time.Duration // how long to wait for the file lock
	Logger      *slog.Logger
	FileOptions []scratchdb.Option // passed to every parse
}

// Library performs locked read-modify-write cycles on library files
type Library struct {
	opts Options
}

// New creates a Library
func New(opts Options) *Library {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = 5 * time.Second
	}
	return &Library{opts: opts}
}

// Load reads and parses path. The format is taken from the file name unless
// format is given.
func (l *Library) Load(ctx context.Context, path string, format *scratchdb.Format) (*scratchdb.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := formatFor(path, format)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file, err := scratchdb.Parse(data, f, l.fileOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// Edit loads path under the file lock, applies fn and writes the result
// back. Nothing is written when fn fails. A missing file starts out empty
// when create is set.
func (l *Library) Edit(ctx context.Context, path string, format *scratchdb.Format, create bool, reason string, fn func(*scratchdb.File) error) (*scratchdb.File, error) {
	unlock, err := l.lock(ctx, path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	f := formatFor(path, format)
	data, err := os.ReadFile(path)
	var file *scratchdb.File
	switch {
	case err == nil:
		file, err = scratchdb.Parse(data, f, l.fileOptions()...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && create:
		data = nil
		file = scratchdb.NewFile(f, l.fileOptions()...)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := fn(file); err != nil {
		return nil, err
	}

	if err := l.replace(ctx, path, f, data, file.Bytes(), file.Len(), reason); err != nil {
		return nil, err
	}
	return file, nil
}

// Restore writes a snapshot back over the file it was taken from. The
// current file is snapshotted first.
func (l *Library) Restore(ctx context.Context, id ksuid.KSUID) (backup.Snapshot, error) {
	if l.opts.Backups == nil {
		return backup.Snapshot{}, errors.New("backups are disabled")
	}
	snap, data, err := l.opts.Backups.Get(id)
	if err != nil {
		return backup.Snapshot{}, err
	}

	unlock, err := l.lock(ctx, snap.Source)
	if err != nil {
		return backup.Snapshot{}, err
	}
	defer unlock()

	current, err := os.ReadFile(snap.Source)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return backup.Snapshot{}, fmt.Errorf("read %s: %w", snap.Source, err)
	}
	f, err := scratchdb.FormatByName(snap.Format)
	if err != nil {
		f = scratchdb.FormatForPath(snap.Source)
	}
	if err := l.replace(ctx, snap.Source, f, current, data, snap.Entries, "restore "+id.String()); err != nil {
		return backup.Snapshot{}, err
	}
	return snap, nil
}

// replace snapshots old (if any) and atomically swaps in data
func (l *Library) replace(ctx context.Context, path string, f scratchdb.Format, old, data []byte, entries int, reason string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if l.opts.Backups != nil && old != nil {
		snap, err := l.opts.Backups.Save(ctx, backup.Snapshot{
			Source:  abs,
			Format:  f.Name,
			Reason:  reason,
			Entries: countEntries(old, f),
		}, old)
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", path, err)
		}
		l.opts.Logger.Info("saved snapshot", "path", abs, "id", snap.ID.String(), "bytes", snap.Size)

		if l.opts.Keep > 0 {
			removed, err := l.opts.Backups.Prune(ctx, abs, l.opts.Keep)
			if err != nil {
				l.opts.Logger.Warn("prune snapshots failed", "path", abs, "error", err)
			} else if len(removed) > 0 {
				l.opts.Logger.Debug("pruned snapshots", "path", abs, "removed", len(removed))
			}
		}
	}

	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return err
	}
	l.opts.Logger.Info("wrote library file", "path", abs, "entries", entries, "bytes", len(data))
	return nil
}

func (l *Library) lock(ctx context.Context, path string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, l.opts.LockTimeout)
	defer cancel()

	fl := flock.New(path + ".lock")
	ok, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, fl.Path())
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			l.opts.Logger.Warn("failed to release lock", "path", fl.Path(), "error", err)
		}
	}, nil
}

func (l *Library) fileOptions() []scratchdb.Option {
	opts := []scratchdb.Option{scratchdb.WithLogger(l.opts.Logger)}
	return append(opts, l.opts.FileOptions...)
}

func formatFor(path string, format *scratchdb.Format) scratchdb.Format {
	if format != nil {
		return *format
	}
	return scratchdb.FormatForPath(path)
}

// countEntries is best effort; snapshots of damaged files report -1
func countEntries(data []byte, f scratchdb.Format) int {
	file, err := scratchdb.Parse(data, f, scratchdb.WithLogger(discard))
	if err != nil {
		return -1
	}
	return file.Len()
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
