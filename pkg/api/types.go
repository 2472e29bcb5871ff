package api

import (
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // empty disables the X-API-Key check
	Path   string // library file served
	Format *scratchdb.Format
}

// HeaderResponse describes the loaded file
type HeaderResponse struct {
	Path        string `json:"path"`
	Format      string `json:"format"`
	Version     string `json:"version"`
	Type        string `json:"type"`
	Entries     int    `json:"entries"`
	Size        int    `json:"size"`
	UnknownKeys int    `json:"unknown_keys"`
}

// EntrySummary is one row of the entry listing
type EntrySummary struct {
	Index  int    `json:"index"`
	Tag    string `json:"tag"`
	ID     string `json:"id"`
	Fields int    `json:"fields"`
}

// EntriesPage is a window of the entry list
type EntriesPage struct {
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
	Total   int            `json:"total"`
	Entries []EntrySummary `json:"entries"`
}

// FieldView is one decoded field of an entry
type FieldView struct {
	Key   string      `json:"key"`
	Name  string      `json:"name,omitempty"`
	Kind  string      `json:"kind,omitempty"`
	Known bool        `json:"known"`
	Value interface{} `json:"value"`
	Raw   string      `json:"raw"` // hex
}

// EntryDetail is a fully decoded entry
type EntryDetail struct {
	Index  int         `json:"index"`
	Tag    string      `json:"tag"`
	ID     string      `json:"id"`
	Fields []FieldView `json:"fields"`
}

// UnknownValue is one distinct value seen for an unknown key
type UnknownValue struct {
	Value   string   `json:"value"`
	Entries []string `json:"entries"`
}

// UnknownKey summarizes an unknown key across the file
type UnknownKey struct {
	Key    string         `json:"key"`
	Count  int            `json:"count"`
	Values []UnknownValue `json:"values"`
}

// ReloadResponse reports the result of re-reading the file
type ReloadResponse struct {
	Entries     int      `json:"entries"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}
