package hierarchy

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"itlexport/internal/library"
	"itlexport/internal/logging"
	"itlexport/internal/textutil"
)

// Kind distinguishes the two records a visitor receives.
type Kind int

const (
	KindFolder Kind = iota
	KindPlaylist
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "playlist"
}

// Target is one placed record. Path is absolute; for playlists it carries the
// configured extension.
type Target struct {
	Kind     Kind
	Playlist *library.Playlist
	Path     string
}

// Visitor receives every placed folder and playlist in document order. An
// error aborts the pass.
type Visitor func(Target) error

// Stats summarizes one pass.
type Stats struct {
	Folders   int
	Playlists int
	Filtered  int
	Orphaned  int
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithExtension sets the suffix appended to playlist paths (for example ".m3u").
func WithExtension(ext string) Option {
	return func(r *Resolver) { r.ext = ext }
}

// WithDirMaker replaces directory creation. Passing nil disables it, which
// is how callers resolve paths without touching the filesystem.
func WithDirMaker(fn func(string) error) Option {
	return func(r *Resolver) {
		if fn == nil {
			fn = func(string) error { return nil }
		}
		r.mkdir = fn
	}
}

// WithRootPlaylists places playlists that have no parent directly under the
// root instead of skipping them.
func WithRootPlaylists(enabled bool) Option {
	return func(r *Resolver) { r.rootPlaylists = enabled }
}

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// Resolver maps playlist records to output paths under a root directory.
type Resolver struct {
	root          string
	ext           string
	rootPlaylists bool
	mkdir         func(string) error
	logger        *slog.Logger
	pathOf        map[string]string
}

// New returns a resolver rooted at root.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:   root,
		mkdir:  func(path string) error { return os.MkdirAll(path, 0o755) },
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Root returns the output root.
func (r *Resolver) Root() string { return r.root }

// Resolve places every record in one left-to-right pass.
func (r *Resolver) Resolve(playlists []library.Playlist, visit Visitor) (Stats, error) {
	var stats Stats
	r.pathOf = make(map[string]string)

	for i := range playlists {
		p := &playlists[i]
		if p.IsFiltered {
			stats.Filtered++
			continue
		}

		name := textutil.SanitizeSegment(p.Name)

		if p.IsFolder {
			base := r.root
			if parent, ok := r.pathOf[p.ParentPersistentID]; ok && p.HasParent() {
				base = parent
			}
			path := filepath.Join(base, name)
			if err := r.mkdir(path); err != nil {
				return stats, fmt.Errorf("create folder %q: %w", path, err)
			}
			if p.PersistentID != "" {
				r.pathOf[p.PersistentID] = path
			}
			stats.Folders++
			if visit != nil {
				if err := visit(Target{Kind: KindFolder, Playlist: p, Path: path}); err != nil {
					return stats, err
				}
			}
			continue
		}

		base, ok := r.parentPath(p)
		if !ok {
			stats.Orphaned++
			r.logger.Debug("playlist skipped; parent folder not resolved",
				logging.String("playlist", p.Name),
				logging.String("parent_id", p.ParentPersistentID),
			)
			continue
		}
		stats.Playlists++
		if visit != nil {
			path := filepath.Join(base, name+r.ext)
			if err := visit(Target{Kind: KindPlaylist, Playlist: p, Path: path}); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// FolderPath returns the resolved path of a folder placed by the last pass.
func (r *Resolver) FolderPath(id string) (string, bool) {
	path, ok := r.pathOf[id]
	return path, ok
}

func (r *Resolver) parentPath(p *library.Playlist) (string, bool) {
	if !p.HasParent() {
		if r.rootPlaylists {
			return r.root, true
		}
		return "", false
	}
	path, ok := r.pathOf[p.ParentPersistentID]
	return path, ok
}
