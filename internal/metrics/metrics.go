package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Output formats used as the "format" label.
const (
	FormatM3U  = "m3u"
	FormatHTML = "html"
)

// Skip reasons used as the "reason" label.
const (
	ReasonOmitted  = "omitted"
	ReasonFailed   = "failed"
	ReasonFiltered = "filtered"
	ReasonOrphaned = "orphaned"
)

// Recorder holds the metrics of one conversion run.
type Recorder struct {
	registry *prometheus.Registry

	PlaylistsWritten *prometheus.CounterVec
	TracksWritten    *prometheus.CounterVec
	TracksSkipped    *prometheus.CounterVec
	PlaylistsSkipped *prometheus.CounterVec
	LibraryTracks    prometheus.Gauge
	LibraryPlaylists prometheus.Gauge
	RunDuration      prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
	LastRunSuccess   prometheus.Gauge
}

// NewRecorder creates a Recorder backed by a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		PlaylistsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itlexport_playlists_written_total",
				Help: "Playlists written during the last run",
			},
			[]string{"format"},
		),
		TracksWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itlexport_tracks_written_total",
				Help: "Playlist entries written during the last run",
			},
			[]string{"format"},
		),
		TracksSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itlexport_tracks_skipped_total",
				Help: "Playlist items left out during the last run",
			},
			[]string{"format", "reason"},
		),
		PlaylistsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itlexport_playlists_skipped_total",
				Help: "Playlist records that produced no output",
			},
			[]string{"reason"},
		),
		LibraryTracks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itlexport_library_tracks",
			Help: "Tracks in the decoded library",
		}),
		LibraryPlaylists: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itlexport_library_playlists",
			Help: "Playlist records in the decoded library",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itlexport_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itlexport_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
		LastRunSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itlexport_last_run_success",
			Help: "1 if the last run completed, 0 otherwise",
		}),
	}
}

// Playlist records one written playlist.
func (r *Recorder) Playlist(format string, entries, omitted, failed int) {
	r.PlaylistsWritten.WithLabelValues(format).Inc()
	r.TracksWritten.WithLabelValues(format).Add(float64(entries))
	r.TracksSkipped.WithLabelValues(format, ReasonOmitted).Add(float64(omitted))
	r.TracksSkipped.WithLabelValues(format, ReasonFailed).Add(float64(failed))
}

// Finish records the run outcome.
func (r *Recorder) Finish(started, finished time.Time, err error) {
	r.RunDuration.Set(finished.Sub(started).Seconds())
	r.LastRunTimestamp.Set(float64(finished.Unix()))
	if err != nil {
		r.LastRunSuccess.Set(0)
		return
	}
	r.LastRunSuccess.Set(1)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
