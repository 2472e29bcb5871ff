package scratchdb

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names one of the two known file kinds and the header strings that
// identify it.
type Format struct {
	Name    string
	Version string
	Type    string
}

// Presets for the two supported file kinds
var (
	Crate = Format{
		Name:    "crate",
		Version: "81.0",
		Type:    "/Serato ScratchLive Crate",
	}
	Database = Format{
		Name:    "database",
		Version: "@2.0",
		Type:    "/Serato Scratch LIVE Database",
	}
)

func (f Format) String() string {
	return f.Name
}

// FormatByName returns the preset called name ("crate" or "database")
func FormatByName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Crate.Name:
		return Crate, nil
	case Database.Name:
		return Database, nil
	default:
		return Format{}, fmt.Errorf("unknown file kind %q (want crate or database)", name)
	}
}

// FormatForPath guesses the preset from a file name: *.crate files are
// crates, everything else is treated as a library database.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".crate") {
		return Crate
	}
	return Database
}
