package scratchdb

// Named accessors for the fields tools most often touch. Every other
// registered field is reachable through Get/Set with its key or through
// fields.ByName.

// FileBase returns the database file name (pfil)
func (e *Entry) FileBase() (string, bool) { return e.StringField("pfil") }

// SetFileBase sets the database file name (pfil)
func (e *Entry) SetFileBase(s string) error { return e.SetStringField("pfil", s) }

// FileTrack returns the crate track name (ptrk)
func (e *Entry) FileTrack() (string, bool) { return e.StringField("ptrk") }

// SetFileTrack sets the crate track name (ptrk)
func (e *Entry) SetFileTrack(s string) error { return e.SetStringField("ptrk", s) }

// FileDir returns the file directory (pdir)
func (e *Entry) FileDir() (string, bool) { return e.StringField("pdir") }

// SetFileDir sets the file directory (pdir)
func (e *Entry) SetFileDir(s string) error { return e.SetStringField("pdir", s) }

// TrackType returns the file type, e.g. "mp3" (ttyp)
func (e *Entry) TrackType() (string, bool) { return e.StringField("ttyp") }

// SetTrackType sets the file type (ttyp)
func (e *Entry) SetTrackType(s string) error { return e.SetStringField("ttyp", s) }

// TrackTitle returns the song name (tsng)
func (e *Entry) TrackTitle() (string, bool) { return e.StringField("tsng") }

// SetTrackTitle sets the song name (tsng)
func (e *Entry) SetTrackTitle(s string) error { return e.SetStringField("tsng", s) }

// TrackArtist returns the artist (tart)
func (e *Entry) TrackArtist() (string, bool) { return e.StringField("tart") }

// SetTrackArtist sets the artist (tart)
func (e *Entry) SetTrackArtist(s string) error { return e.SetStringField("tart", s) }

// TrackAlbum returns the album (talb)
func (e *Entry) TrackAlbum() (string, bool) { return e.StringField("talb") }

// SetTrackAlbum sets the album (talb)
func (e *Entry) SetTrackAlbum(s string) error { return e.SetStringField("talb", s) }

// TrackGenre returns the genre (tgen)
func (e *Entry) TrackGenre() (string, bool) { return e.StringField("tgen") }

// SetTrackGenre sets the genre (tgen)
func (e *Entry) SetTrackGenre(s string) error { return e.SetStringField("tgen", s) }

// TimeAdded returns the unix time the track was added (uadd)
func (e *Entry) TimeAdded() (uint32, bool, error) { return e.IntField("uadd") }

// SetTimeAdded sets the unix time the track was added (uadd)
func (e *Entry) SetTimeAdded(t uint32) error { return e.SetIntField("uadd", t) }

// TimeModified returns utme, a unix time set alongside uadd
func (e *Entry) TimeModified() (uint32, bool, error) { return e.IntField("utme") }

// SetTimeModified sets utme
func (e *Entry) SetTimeModified(t uint32) error { return e.SetIntField("utme", t) }

// Missing reports the bmis flag
func (e *Entry) Missing() (bool, bool) {
	n, ok, err := e.IntField("bmis")
	return ok && err == nil && n != 0, ok
}

// Corrupt reports the bcrt flag
func (e *Entry) Corrupt() (bool, bool) {
	n, ok, err := e.IntField("bcrt")
	return ok && err == nil && n != 0, ok
}
