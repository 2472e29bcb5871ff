package scratchdb

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ssargent/scratchlivedb/pkg/unknown"
)

// Stub entry defaults. Only mp3 has been tried against Scratch Live, so
// anything else is flagged rather than silently assumed to work.
const DefaultExtension = "mp3"

var defaultAllowedExtensions = []string{"mp3"}

type options struct {
	logger      *slog.Logger
	tracker     *unknown.Tracker
	now         func() time.Time
	allowedExts []string
	defaultExt  string
}

// Option configures parsing and stub entry construction
type Option func(*options)

// WithLogger sets the logger used for warnings. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracker records unknown fields into t instead of a tracker owned by
// the file. Share one tracker between loads to aggregate them. A parse that
// fails adds nothing to t.
func WithTracker(t *unknown.Tracker) Option {
	return func(o *options) {
		if t != nil {
			o.tracker = t
		}
	}
}

// WithClock sets the time source for stub entry timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAllowedExtensions replaces the list of file extensions accepted for
// stub entries without a warning.
func WithAllowedExtensions(exts ...string) Option {
	return func(o *options) {
		o.allowedExts = o.allowedExts[:0:0]
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext != "" {
				o.allowedExts = append(o.allowedExts, ext)
			}
		}
	}
}

// WithDefaultExtension sets the type assumed for paths without an extension
func WithDefaultExtension(ext string) Option {
	return func(o *options) {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			o.defaultExt = ext
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:         time.Now,
		allowedExts: append([]string(nil), defaultAllowedExtensions...),
		defaultExt:  DefaultExtension,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracker == nil {
		o.tracker = unknown.New()
	}
	return o
}
