package library

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"itlexport/internal/plist"
	"itlexport/internal/textutil"
)

const (
	notAvailable  = "n/a"
	unsetYear     = 9999
	ignoredSuffix = ".m4p"
	addedLayout   = "2006-01-02 15:04:05"
)

// ErrAttributeFormat reports a track attribute that cannot be rendered.
var ErrAttributeFormat = errors.New("attribute cannot be formatted")

// Track is one entry of the library's track table. Zero values mean the
// attribute was absent from the source.
type Track struct {
	Name        string
	Artist      string
	Album       string
	TotalTime   int64
	DiscNumber  int64
	DiscCount   int64
	TrackNumber int64
	TrackCount  int64
	Year        int64
	DateAdded   time.Time
	Location    string
}

func trackFromDict(d *plist.Dict) *Track {
	added, _ := d.Get(keyDateAdded)
	ts, _ := added.AsTime()
	return &Track{
		Name:        d.String(keyName),
		Artist:      d.String(keyArtist),
		Album:       d.String(keyAlbum),
		TotalTime:   d.Int(keyTotalTime),
		DiscNumber:  d.Int(keyDiscNumber),
		DiscCount:   d.Int(keyDiscCount),
		TrackNumber: d.Int(keyTrackNumber),
		TrackCount:  d.Int(keyTrackCount),
		Year:        d.Int(keyYear),
		DateAdded:   ts,
		Location:    d.String(keyLocation),
	}
}

// Title returns the normalized track name or "n/a".
func (t *Track) Title() string { return textOrNA(t.Name) }

// ArtistLabel returns the normalized artist or "n/a".
func (t *Track) ArtistLabel() string { return textOrNA(t.Artist) }

// AlbumLabel returns the normalized album or "n/a".
func (t *Track) AlbumLabel() string { return textOrNA(t.Album) }

// Duration renders the total time as m:ss, or h:mm:ss past an hour.
func (t *Track) Duration() string {
	if t.TotalTime <= 0 {
		return notAvailable
	}
	seconds := t.TotalTime / 1000
	hh := seconds / 3600
	mm := (seconds - hh*3600) / 60
	ss := seconds % 60
	if hh > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%d:%02d", mm, ss)
}

// WholeSeconds returns the total time truncated to seconds.
func (t *Track) WholeSeconds() (int64, error) {
	if t.TotalTime <= 0 {
		return 0, fmt.Errorf("total time missing: %w", ErrAttributeFormat)
	}
	return t.TotalTime / 1000, nil
}

// TrackLabel renders "number/count" or "n/a".
func (t *Track) TrackLabel() string { return counter(t.TrackNumber, t.TrackCount) }

// DiscLabel renders "number/count" or "n/a".
func (t *Track) DiscLabel() string { return counter(t.DiscNumber, t.DiscCount) }

// YearLabel renders the release year; 9999 is the library's "unset" marker.
func (t *Track) YearLabel() string {
	if t.Year == 0 || t.Year == unsetYear {
		return notAvailable
	}
	return fmt.Sprintf("%d", t.Year)
}

// AddedLabel renders the date added as "YYYY-MM-DD HH:MM:SS".
func (t *Track) AddedLabel() string {
	if t.DateAdded.IsZero() {
		return notAvailable
	}
	return t.DateAdded.Format(addedLayout)
}

// Ignored reports whether the track's file is a protected .m4p purchase.
func (t *Track) Ignored() bool {
	return strings.HasSuffix(t.Location, ignoredSuffix)
}

// ResolveLocation returns the playable location. ok is false when the track has no
// location or is ignored; callers omit such tracks. When oldPrefix is set and
// leads the decoded location it is replaced by newPrefix.
func (t *Track) ResolveLocation(oldPrefix, newPrefix string) (string, bool) {
	if t.Location == "" || t.Ignored() {
		return "", false
	}
	location := textutil.Unquote(t.Location)
	if oldPrefix != "" && strings.HasPrefix(location, oldPrefix) {
		location = newPrefix + strings.TrimPrefix(location, oldPrefix)
	}
	return textutil.NFC(location), true
}

func counter(n, count int64) string {
	if n == 0 || count == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d/%d", n, count)
}

func textOrNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return textutil.NFC(s)
}
