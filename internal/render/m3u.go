package render

import (
	"fmt"
	"io"
	"log/slog"

	"itlexport/internal/library"
	"itlexport/internal/logging"
)

const m3uHeader = "#EXTM3U\n"

// M3U writes p as an extended M3U playlist. Items whose track is unknown or
// has no total time are logged and skipped; items without a playable
// location are omitted silently.
func M3U(w io.Writer, lib *library.Library, p *library.Playlist, loc Location, logger *slog.Logger) (PlaylistStats, error) {
	var stats PlaylistStats
	if _, err := io.WriteString(w, m3uHeader); err != nil {
		return stats, fmt.Errorf("write m3u header: %w", err)
	}

	for _, id := range p.Items {
		track, err := lib.Track(id)
		if err != nil {
			stats.Failed++
			warnItem(logger, p, id, err, "track_lookup_failed")
			continue
		}
		location, ok := loc.Resolve(track)
		if !ok {
			stats.Omitted++
			continue
		}
		seconds, err := track.WholeSeconds()
		if err != nil {
			stats.Failed++
			warnItem(logger, p, id, err, "track_format_failed")
			continue
		}
		if _, err := fmt.Fprintf(w, "#EXTINF:%d,%s\n%s\n", seconds, track.Title(), location); err != nil {
			return stats, fmt.Errorf("write m3u entry: %w", err)
		}
		stats.Entries++
	}
	return stats, nil
}

func warnItem(logger *slog.Logger, p *library.Playlist, id int64, err error, eventType string) {
	logging.WarnWithContext(logger, "playlist item skipped", eventType,
		logging.String("playlist", p.Name),
		logging.Int64("track_id", id),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect the track record in the library file"),
		logging.String(logging.FieldImpact, "track omitted from m3u playlist"),
	)
}
