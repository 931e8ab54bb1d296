package render

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"itlexport/internal/fileutil"
	"itlexport/internal/library"
	"itlexport/internal/logging"
)

// Node is an entry of the combined tree: a *FolderNode or a *PlaylistNode.
type Node interface {
	isNode()
}

// FolderNode maps child labels to nodes. Children are emitted sorted by label.
type FolderNode struct {
	Children map[string]Node
}

// PlaylistNode maps track display keys to attributes in playlist order.
type PlaylistNode struct {
	Tracks *OrderedMap[Attributes]
}

func (*FolderNode) isNode()   {}
func (*PlaylistNode) isNode() {}

// MarshalJSON emits {"kind":"folder","children":{...}}. encoding/json writes
// map keys in sorted order.
func (f *FolderNode) MarshalJSON() ([]byte, error) {
	children := f.Children
	if children == nil {
		children = map[string]Node{}
	}
	return json.Marshal(struct {
		Kind     string          `json:"kind"`
		Children map[string]Node `json:"children"`
	}{Kind: "folder", Children: children})
}

// MarshalJSON emits {"kind":"playlist","tracks":{...}} keeping track order.
func (p *PlaylistNode) MarshalJSON() ([]byte, error) {
	tracks := p.Tracks
	if tracks == nil {
		tracks = NewOrderedMap[Attributes](0)
	}
	return json.Marshal(struct {
		Kind   string                  `json:"kind"`
		Tracks *OrderedMap[Attributes] `json:"tracks"`
	}{Kind: "playlist", Tracks: tracks})
}

// Tree accumulates the resolved hierarchy for combined mode.
type Tree struct {
	root   string
	ext    string
	top    *FolderNode
	opts   HTMLOptions
	logger *slog.Logger
}

// NewTree returns an empty tree. Paths added later are interpreted
// relative to root; ext is stripped from playlist labels.
func NewTree(root, ext string, opts HTMLOptions, logger *slog.Logger) *Tree {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Tree{
		root:   root,
		ext:    ext,
		top:    &FolderNode{Children: map[string]Node{}},
		opts:   opts,
		logger: logger,
	}
}

// Root returns the top folder node.
func (t *Tree) Root() *FolderNode { return t.top }

// AddFolder ensures a folder node exists at path.
func (t *Tree) AddFolder(path string) error {
	segments, err := t.segments(path)
	if err != nil {
		return err
	}
	t.folder(segments)
	return nil
}

// AddPlaylist places the track table of p at path, creating any missing
// parent folders. A later entry with the same label replaces an earlier one.
func (t *Tree) AddPlaylist(path string, lib *library.Library, p *library.Playlist) (PlaylistStats, error) {
	segments, err := t.segments(path)
	if err != nil {
		return PlaylistStats{}, err
	}
	table, stats := PlaylistTable(lib, p, t.opts.Table, t.logger)
	parent := t.folder(segments[:len(segments)-1])
	label := strings.TrimSuffix(segments[len(segments)-1], t.ext)
	parent.Children[label] = &PlaylistNode{Tracks: table}
	return stats, nil
}

// Write renders the combined document to path.
func (t *Tree) Write(path string) error {
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return t.render(w)
	})
}

func (t *Tree) render(w io.Writer) error {
	return writePage(w, page{
		Title:       t.opts.TopLabel,
		Kind:        kindTree,
		Breadcrumbs: []Link{},
		Data:        t.top,
	})
}

func (t *Tree) segments(path string) ([]string, error) {
	rel, err := filepath.Rel(t.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("tree path %q is not below %q", path, t.root)
	}
	return strings.Split(filepath.ToSlash(rel), "/"), nil
}

// folder walks segments from the top, creating folders as needed. A
// playlist occupying a folder's label is replaced by the folder.
func (t *Tree) folder(segments []string) *FolderNode {
	node := t.top
	for _, seg := range segments {
		child, ok := node.Children[seg].(*FolderNode)
		if !ok {
			child = &FolderNode{Children: map[string]Node{}}
			node.Children[seg] = child
		}
		node = child
	}
	return node
}
