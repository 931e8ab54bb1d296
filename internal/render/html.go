package render

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"itlexport/internal/fileutil"
	"itlexport/internal/library"
	"itlexport/internal/logging"
	"itlexport/internal/textutil"
)

// HTMLOptions configures HTMLPages and Tree.
type HTMLOptions struct {
	// TopLabel names the output root in breadcrumbs and on the root index.
	TopLabel string
	Table    TableOptions
}

// HTMLPages writes separated-mode pages below root.
type HTMLPages struct {
	root   string
	opts   HTMLOptions
	logger *slog.Logger
}

// NewHTMLPages returns a renderer writing pages below root.
func NewHTMLPages(root string, opts HTMLOptions, logger *slog.Logger) *HTMLPages {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HTMLPages{root: root, opts: opts, logger: logger}
}

// WritePlaylist writes the page for p at path, which must lie below the root.
func (h *HTMLPages) WritePlaylist(path string, lib *library.Library, p *library.Playlist) (PlaylistStats, error) {
	table, stats := PlaylistTable(lib, p, h.opts.Table, h.logger)
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		return writePage(w, page{
			Title:       textutil.NFC(p.Name),
			Kind:        kindPlaylist,
			Breadcrumbs: Breadcrumbs(h.root, path, h.opts.TopLabel),
			Data:        table,
		})
	})
	return stats, err
}

// WriteIndexes writes an index.html into every directory below and
// including the root, deepest first. Each index lists the directory's
// entries alphabetically and returns the number of pages written.
func (h *HTMLPages) WriteIndexes() (int, error) {
	var dirs []string
	err := filepath.WalkDir(h.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk html root: %w", err)
	}

	slices.Reverse(dirs)
	for _, dir := range dirs {
		if err := h.writeIndex(dir); err != nil {
			return 0, err
		}
	}
	return len(dirs), nil
}

func (h *HTMLPages) writeIndex(dir string) error {
	entries, err := indexEntries(dir)
	if err != nil {
		return err
	}
	title := h.opts.TopLabel
	if dir != h.root {
		title = filepath.Base(dir)
	}
	path := filepath.Join(dir, indexPage)
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return writePage(w, page{
			Title:       title,
			Kind:        kindIndex,
			Breadcrumbs: Breadcrumbs(h.root, path, h.opts.TopLabel),
			Data:        entries,
		})
	})
}

// indexEntries lists dir sorted by name. Subdirectories link to their own
// index page; pages link directly and are labelled without the extension.
func indexEntries(dir string) ([]Link, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	entries := make([]Link, 0, len(dirEntries))
	for _, entry := range dirEntries {
		name := entry.Name()
		switch {
		case name == indexPage, strings.HasPrefix(name, "."):
			continue
		case entry.IsDir():
			entries = append(entries, Link{Label: name, Href: name + "/" + indexPage})
		case strings.HasSuffix(name, htmlExt):
			entries = append(entries, Link{Label: strings.TrimSuffix(name, htmlExt), Href: name})
		}
	}
	return entries, nil
}
