package convert

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
	"github.com/google/uuid"

	"itlexport/internal/config"
	"itlexport/internal/fileutil"
	"itlexport/internal/hierarchy"
	"itlexport/internal/history"
	"itlexport/internal/library"
	"itlexport/internal/logging"
	"itlexport/internal/metrics"
	"itlexport/internal/render"
)

const (
	lockFileName    = "itlexport.lock"
	libraryCopyName = "library.xml"
	m3uExt          = ".m3u"
	htmlExt         = ".html"
	indexPage       = "index.html"
)

// ErrLocked reports that another run holds the state directory lock.
var ErrLocked = errors.New("another conversion is running")

// Summary describes a finished run.
type Summary struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	LibraryPath   string
	LibrarySHA256 string
	Tracks        int
	Playlists     int
	Hierarchy     hierarchy.Stats
	M3UWritten    int
	M3U           render.PlaylistStats
	HTMLWritten   int
	HTML          render.PlaylistStats
	IndexPages    int
}

// Duration returns the wall time of the run.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Converter runs conversions with fixed options.
type Converter struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New returns a Converter. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Converter {
	return &Converter{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "convert"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Run performs one conversion. Per-item problems are logged and counted in
// the summary; decode errors, I/O errors, and cancellation abort the run.
func (c *Converter) Run(ctx context.Context) (Summary, error) {
	if err := os.MkdirAll(c.opts.StateDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create state directory: %w", err)
	}
	lock := flock.New(filepath.Join(c.opts.StateDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Warn("failed to release lock", logging.Error(err))
		}
	}()

	summary := Summary{
		RunID:       c.newID(),
		StartedAt:   c.now(),
		LibraryPath: c.opts.LibraryPath,
	}
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, c.logger)
	recorder := metrics.NewRecorder()

	logger.Info("conversion started",
		logging.String("library", c.opts.LibraryPath),
		logging.String("m3u_dir", c.opts.M3UDir),
		logging.String("html_mode", c.opts.HTMLMode),
	)

	runErr := c.run(ctx, logger, recorder, &summary)
	summary.FinishedAt = c.now()
	recorder.Finish(summary.StartedAt, summary.FinishedAt, runErr)

	c.writeMetrics(logger, recorder)
	c.recordHistory(ctx, logger, summary, runErr)

	if runErr != nil {
		logger.Error("conversion failed", logging.Error(runErr))
		return summary, runErr
	}
	logger.Info("conversion completed",
		logging.Int("m3u_written", summary.M3UWritten),
		logging.Int("html_written", summary.HTMLWritten),
		logging.Int("entries", summary.M3U.Entries),
		logging.Int("orphaned", summary.Hierarchy.Orphaned),
		logging.Duration("duration", summary.Duration()),
	)
	return summary, nil
}

func (c *Converter) run(ctx context.Context, logger *slog.Logger, recorder *metrics.Recorder, summary *Summary) error {
	source := c.opts.LibraryPath
	if c.opts.CopyLibrary {
		dst := filepath.Join(c.opts.StateDir, libraryCopyName)
		digest, err := fileutil.CopyFileVerified(source, dst)
		if err != nil {
			return fmt.Errorf("copy library: %w", err)
		}
		summary.LibrarySHA256 = digest
		source = dst
		logger.Debug("library copied", logging.String("path", dst), logging.String("sha256", digest))
	}

	lib, err := library.Load(source)
	if err != nil {
		return err
	}
	summary.Tracks = len(lib.Tracks)
	summary.Playlists = len(lib.Playlists)
	recorder.LibraryTracks.Set(float64(summary.Tracks))
	recorder.LibraryPlaylists.Set(float64(summary.Playlists))
	logger.Info("library decoded",
		logging.Int("tracks", summary.Tracks),
		logging.Int("playlists", summary.Playlists),
	)

	if err := c.prepareOutputs(); err != nil {
		return err
	}

	if err := c.writeM3U(ctx, logger, recorder, lib, summary); err != nil {
		return err
	}

	switch {
	case !c.opts.htmlEnabled():
		return nil
	case c.opts.HTMLMode == config.HTMLModeCombined:
		return c.writeTree(ctx, logger, recorder, lib, summary)
	default:
		return c.writeHTMLPages(ctx, logger, recorder, lib, summary)
	}
}

func (c *Converter) prepareOutputs() error {
	roots := []string{c.opts.M3UDir}
	if c.opts.htmlEnabled() {
		roots = append(roots, c.opts.HTMLDir)
	}
	for _, root := range roots {
		if c.opts.CleanOutputs {
			if err := fileutil.CleanDir(root); err != nil {
				return fmt.Errorf("clean output %s: %w", root, err)
			}
			continue
		}
		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("create output %s: %w", root, err)
		}
	}
	return nil
}

func (c *Converter) location() render.Location {
	return render.Location{OldPrefix: c.opts.OldPrefix, NewPrefix: c.opts.NewPrefix}
}

func (c *Converter) htmlOptions() render.HTMLOptions {
	return render.HTMLOptions{
		TopLabel: c.opts.TopLabel,
		Table: render.TableOptions{
			Location:      c.location(),
			LinkLocations: c.opts.LinkLocations,
		},
	}
}

func (c *Converter) resolver(root, ext string, logger *slog.Logger, extra ...hierarchy.Option) *hierarchy.Resolver {
	opts := []hierarchy.Option{
		hierarchy.WithExtension(ext),
		hierarchy.WithRootPlaylists(c.opts.RootPlaylists),
		hierarchy.WithLogger(logger),
	}
	return hierarchy.New(root, append(opts, extra...)...)
}

func (c *Converter) writeM3U(ctx context.Context, logger *slog.Logger, recorder *metrics.Recorder, lib *library.Library, summary *Summary) error {
	logger = logger.With(logging.String("format", "m3u"))
	loc := c.location()
	stats, err := c.resolver(c.opts.M3UDir, m3uExt, logger).Resolve(lib.Playlists, func(target hierarchy.Target) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if target.Kind != hierarchy.KindPlaylist {
			return nil
		}
		var ps render.PlaylistStats
		err := fileutil.WriteAtomic(target.Path, func(w io.Writer) error {
			var err error
			ps, err = render.M3U(w, lib, target.Playlist, loc, logger)
			return err
		})
		if err != nil {
			return fmt.Errorf("write playlist %s: %w", target.Path, err)
		}
		summary.M3UWritten++
		summary.M3U.Add(ps)
		recorder.Playlist(metrics.FormatM3U, ps.Entries, ps.Omitted, ps.Failed)
		logger.Debug("playlist written",
			logging.String("path", target.Path),
			logging.Int("entries", ps.Entries),
		)
		return nil
	})
	summary.Hierarchy = stats
	recorder.PlaylistsSkipped.WithLabelValues(metrics.ReasonFiltered).Add(float64(stats.Filtered))
	recorder.PlaylistsSkipped.WithLabelValues(metrics.ReasonOrphaned).Add(float64(stats.Orphaned))
	if err != nil {
		return err
	}
	logger.Info("m3u playlists written",
		logging.Int("playlists", summary.M3UWritten),
		logging.Int("folders", stats.Folders),
		logging.Int("filtered", stats.Filtered),
		logging.Int("orphaned", stats.Orphaned),
	)
	return nil
}

func (c *Converter) writeHTMLPages(ctx context.Context, logger *slog.Logger, recorder *metrics.Recorder, lib *library.Library, summary *Summary) error {
	logger = logger.With(logging.String("format", "html"))
	pages := render.NewHTMLPages(c.opts.HTMLDir, c.htmlOptions(), logger)
	_, err := c.resolver(c.opts.HTMLDir, htmlExt, logger).Resolve(lib.Playlists, func(target hierarchy.Target) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if target.Kind != hierarchy.KindPlaylist {
			return nil
		}
		ps, err := pages.WritePlaylist(target.Path, lib, target.Playlist)
		if err != nil {
			return fmt.Errorf("write page %s: %w", target.Path, err)
		}
		summary.HTMLWritten++
		summary.HTML.Add(ps)
		recorder.Playlist(metrics.FormatHTML, ps.Entries, ps.Omitted, ps.Failed)
		return nil
	})
	if err != nil {
		return err
	}
	indexes, err := pages.WriteIndexes()
	if err != nil {
		return fmt.Errorf("write index pages: %w", err)
	}
	summary.IndexPages = indexes
	logger.Info("html pages written",
		logging.Int("pages", summary.HTMLWritten),
		logging.Int("indexes", indexes),
	)
	return nil
}

func (c *Converter) writeTree(ctx context.Context, logger *slog.Logger, recorder *metrics.Recorder, lib *library.Library, summary *Summary) error {
	logger = logger.With(logging.String("format", "tree"))
	tree := render.NewTree(c.opts.HTMLDir, "", c.htmlOptions(), logger)
	resolver := c.resolver(c.opts.HTMLDir, "", logger, hierarchy.WithDirMaker(nil))
	_, err := resolver.Resolve(lib.Playlists, func(target hierarchy.Target) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if target.Kind == hierarchy.KindFolder {
			return tree.AddFolder(target.Path)
		}
		ps, err := tree.AddPlaylist(target.Path, lib, target.Playlist)
		if err != nil {
			return err
		}
		summary.HTMLWritten++
		summary.HTML.Add(ps)
		recorder.Playlist(metrics.FormatHTML, ps.Entries, ps.Omitted, ps.Failed)
		return nil
	})
	if err != nil {
		return err
	}
	path := filepath.Join(c.opts.HTMLDir, indexPage)
	if err := tree.Write(path); err != nil {
		return fmt.Errorf("write tree %s: %w", path, err)
	}
	summary.IndexPages = 1
	logger.Info("combined tree written",
		logging.String("path", path),
		logging.Int("playlists", summary.HTMLWritten),
	)
	return nil
}

func (c *Converter) writeMetrics(logger *slog.Logger, recorder *metrics.Recorder) {
	if c.opts.MetricsPath == "" {
		return
	}
	if err := recorder.WriteTextfile(c.opts.MetricsPath); err != nil {
		logging.WarnWithContext(logger, "metrics textfile not written", "metrics_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check metrics.textfile_path permissions"),
			logging.String(logging.FieldImpact, "monitoring shows stale values"),
		)
	}
}

func (c *Converter) recordHistory(ctx context.Context, logger *slog.Logger, summary Summary, runErr error) {
	if c.opts.HistoryPath == "" {
		return
	}
	run := history.Run{
		RunID:          summary.RunID,
		StartedAt:      summary.StartedAt,
		FinishedAt:     summary.FinishedAt,
		Status:         history.StatusCompleted,
		LibraryPath:    summary.LibraryPath,
		LibrarySHA256:  summary.LibrarySHA256,
		Tracks:         summary.Tracks,
		Playlists:      summary.Playlists,
		M3UWritten:     summary.M3UWritten,
		HTMLWritten:    summary.HTMLWritten,
		EntriesWritten: summary.M3U.Entries,
		ItemsSkipped:   summary.M3U.Omitted + summary.M3U.Failed,
		Filtered:       summary.Hierarchy.Filtered,
		Orphaned:       summary.Hierarchy.Orphaned,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.ErrorMessage = runErr.Error()
	}

	// The run context may already be cancelled; the row is still wanted.
	recordCtx := context.WithoutCancel(ctx)
	store, err := history.Open(recordCtx, c.opts.HistoryPath)
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the history database if the schema changed"),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
		return
	}
	defer store.Close()
	if _, err := store.Record(recordCtx, run); err != nil {
		logging.WarnWithContext(logger, "run history not recorded", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
	}
}
