package api

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/scratchlivedb/pkg/fields"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
	"github.com/ssargent/scratchlivedb/pkg/unknown"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// Server holds the API server state
type Server struct {
	loader  Loader
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger

	mu   sync.RWMutex
	file *scratchdb.File
}

// NewServer creates a new API server. The file is read by Reload.
func NewServer(loader Loader, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		loader:  loader,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// Reload re-reads the configured file. The previous file stays served when
// loading fails.
func (s *Server) Reload(ctx context.Context) (*scratchdb.File, error) {
	start := time.Now()
	f, err := s.loader.Load(ctx, s.config.Path, s.config.Format)
	if err != nil {
		s.metrics.RecordFileLoad(false, time.Since(start), 0, 0, 0, 0)
		s.logger.Error("reload failed", "path", s.config.Path, "error", err)
		return nil, err
	}
	s.metrics.RecordFileLoad(true, time.Since(start), f.Len(), f.Size(), f.Unknowns().Len(), len(f.Diagnostics()))

	s.mu.Lock()
	s.file = f
	s.mu.Unlock()

	s.logger.Info("loaded library file", "path", s.config.Path, "entries", f.Len())
	return f, nil
}

func (s *Server) current() *scratchdb.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// handleHealth reports whether a file is loaded
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.current() == nil {
		s.metrics.RecordHealthCheck(false)
		sendError(w, "no library file loaded", http.StatusServiceUnavailable)
		return
	}
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	f := s.current()
	if f == nil {
		sendError(w, "no library file loaded", http.StatusServiceUnavailable)
		return
	}

	h := f.Header()
	sendSuccess(w, HeaderResponse{
		Path:        s.config.Path,
		Format:      f.Format().Name,
		Version:     h.Version,
		Type:        h.Type,
		Entries:     f.Len(),
		Size:        f.Size(),
		UnknownKeys: f.Unknowns().Len(),
	})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	f := s.current()
	if f == nil {
		sendError(w, "no library file loaded", http.StatusServiceUnavailable)
		return
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		sendError(w, "offset must be a non-negative integer", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil || limit <= 0 {
		sendError(w, "limit must be a positive integer", http.StatusBadRequest)
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	entries := f.Entries()
	page := EntriesPage{
		Offset:  offset,
		Limit:   limit,
		Total:   len(entries),
		Entries: []EntrySummary{},
	}
	for i := offset; i < len(entries) && i < offset+limit; i++ {
		e := entries[i]
		page.Entries = append(page.Entries, EntrySummary{
			Index:  i,
			Tag:    e.Tag(),
			ID:     e.ID(),
			Fields: e.Len(),
		})
	}
	sendSuccess(w, page)
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	f := s.current()
	if f == nil {
		sendError(w, "no library file loaded", http.StatusServiceUnavailable)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		sendError(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	e, err := f.Entry(index)
	if err != nil {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	sendSuccess(w, describeEntry(index, e))
}

func (s *Server) handleUnknowns(w http.ResponseWriter, r *http.Request) {
	f := s.current()
	if f == nil {
		sendError(w, "no library file loaded", http.StatusServiceUnavailable)
		return
	}
	sendSuccess(w, describeUnknowns(f.Unknowns()))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	f, err := s.Reload(r.Context())
	if err != nil {
		sendError(w, fmt.Sprintf("reload failed: %v", err), http.StatusInternalServerError)
		return
	}

	resp := ReloadResponse{Entries: f.Len()}
	for _, d := range f.Diagnostics() {
		resp.Diagnostics = append(resp.Diagnostics, d.String())
	}
	sendSuccess(w, resp)
}

func describeEntry(index int, e *scratchdb.Entry) EntryDetail {
	detail := EntryDetail{Index: index, Tag: e.Tag(), ID: e.ID()}
	for _, key := range e.Keys() {
		raw, _ := e.Raw(key)
		view := FieldView{Key: key, Raw: hex.EncodeToString(raw)}

		if f, err := fields.Lookup(key); err == nil {
			view.Known = true
			view.Name = f.Name
		}
		if kind, err := scratchdb.KindOf(key); err == nil {
			view.Kind = kind.String()
			if v, _, err := e.Get(key); err == nil {
				view.Value = v.Interface()
			}
		}
		detail.Fields = append(detail.Fields, view)
	}
	return detail
}

func describeUnknowns(t *unknown.Tracker) []UnknownKey {
	out := []UnknownKey{}
	for _, key := range t.Keys() {
		o, ok := t.Observation(key)
		if !ok {
			continue
		}
		uk := UnknownKey{Key: key, Count: o.Count()}
		for _, sample := range o.Samples() {
			uk.Values = append(uk.Values, UnknownValue{
				Value:   unknown.FormatValue(key, sample.Raw),
				Entries: sample.Entries,
			})
		}
		out = append(out, uk)
	}
	return out
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
