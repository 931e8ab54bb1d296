package render

import (
	"html"
	"log/slog"

	"itlexport/internal/library"
	"itlexport/internal/logging"
)

// Attributes is the per-track record shown on HTML pages. Field order is
// the column order.
type Attributes struct {
	Artist   string `json:"Artist"`
	Album    string `json:"Album"`
	Year     string `json:"Year"`
	Duration string `json:"Duration"`
	Track    string `json:"Track"`
	Disc     string `json:"Disc"`
	Added    string `json:"Added"`
}

// AttributesOf formats the display attributes of t.
func AttributesOf(t *library.Track) Attributes {
	return Attributes{
		Artist:   t.ArtistLabel(),
		Album:    t.AlbumLabel(),
		Year:     t.YearLabel(),
		Duration: t.Duration(),
		Track:    t.TrackLabel(),
		Disc:     t.DiscLabel(),
		Added:    t.AddedLabel(),
	}
}

// Location holds the prefix translation applied to track locations.
type Location struct {
	OldPrefix string
	NewPrefix string
}

// Resolve returns the translated location of t.
func (l Location) Resolve(t *library.Track) (string, bool) {
	return t.ResolveLocation(l.OldPrefix, l.NewPrefix)
}

// PlaylistStats counts what happened to the items of one playlist.
type PlaylistStats struct {
	Entries int
	Omitted int
	Failed  int
}

// Add accumulates other into s.
func (s *PlaylistStats) Add(other PlaylistStats) {
	s.Entries += other.Entries
	s.Omitted += other.Omitted
	s.Failed += other.Failed
}

// TableOptions controls how PlaylistTable labels tracks.
type TableOptions struct {
	Location      Location
	LinkLocations bool
}

// DisplayKey returns the table key of t as HTML: its escaped title, or an
// anchor to its location when linking is requested and a location exists.
// The page script inserts keys as markup.
func DisplayKey(t *library.Track, opts TableOptions) string {
	title := html.EscapeString(t.Title())
	if !opts.LinkLocations {
		return title
	}
	location, ok := opts.Location.Resolve(t)
	if !ok {
		return title
	}
	return `<a href="` + html.EscapeString(location) + `">` + title + `</a>`
}

// PlaylistTable maps each resolvable item of p to its attributes, in item
// order. Unknown track ids are logged and skipped.
func PlaylistTable(lib *library.Library, p *library.Playlist, opts TableOptions, logger *slog.Logger) (*OrderedMap[Attributes], PlaylistStats) {
	table := NewOrderedMap[Attributes](len(p.Items))
	var stats PlaylistStats
	for _, id := range p.Items {
		track, err := lib.Track(id)
		if err != nil {
			stats.Failed++
			logging.WarnWithContext(logger, "track lookup failed", "track_lookup_failed",
				logging.String("playlist", p.Name),
				logging.Int64("track_id", id),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "library references a track missing from the Tracks table"),
				logging.String(logging.FieldImpact, "track omitted from html page"),
			)
			continue
		}
		table.Set(DisplayKey(track, opts), AttributesOf(track))
		stats.Entries++
	}
	return table, stats
}
