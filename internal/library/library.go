package library

import (
	"errors"
	"fmt"
	"strconv"

	"itlexport/internal/plist"
)

// Source keys consumed from the library document.
const (
	keyTracks    = "Tracks"
	keyPlaylists = "Playlists"

	keyName         = "Name"
	keyArtist       = "Artist"
	keyAlbum        = "Album"
	keyTotalTime    = "Total Time"
	keyDiscNumber   = "Disc Number"
	keyDiscCount    = "Disc Count"
	keyTrackNumber  = "Track Number"
	keyTrackCount   = "Track Count"
	keyYear         = "Year"
	keyDateAdded    = "Date Added"
	keyLocation     = "Location"
	keyTrackID      = "Track ID"
	keyPersistentID = "Playlist Persistent ID"
	keyParentID     = "Parent Persistent ID"
	keyMaster       = "Master"
	keyDistinguish  = "Distinguished Kind"
	keyFolder       = "Folder"
	keyItems        = "Playlist Items"
)

var (
	// ErrNotLibrary reports a document whose root is not a dictionary.
	ErrNotLibrary = errors.New("library root is not a dict")
	// ErrTrackNotFound reports a playlist item pointing at a missing track.
	ErrTrackNotFound = errors.New("track not found")
)

// Library is the decoded track table plus playlists in document order.
type Library struct {
	Tracks    map[string]*Track
	Playlists []Playlist
}

// Playlist is one playlist or folder record.
type Playlist struct {
	PersistentID       string
	ParentPersistentID string
	Name               string
	// IsFolder is set for records flagged Folder and for records without an
	// item list; neither kind produces a playlist file.
	IsFolder bool
	// IsFiltered marks Master and Distinguished Kind records, which never
	// produce output.
	IsFiltered bool
	Items      []int64
}

// HasParent reports whether the record names a parent folder.
func (p Playlist) HasParent() bool { return p.ParentPersistentID != "" }

// FromValue builds a Library from a decoded property-list root. Missing
// Tracks or Playlists keys yield empty collections.
func FromValue(root plist.Value) (*Library, error) {
	dict, ok := root.AsDict()
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotLibrary, root.Kind())
	}

	lib := &Library{Tracks: map[string]*Track{}}

	if value, ok := dict.Get(keyTracks); ok {
		tracks, _ := value.AsDict()
		lib.Tracks = make(map[string]*Track, tracks.Len())
		for _, id := range tracks.Keys() {
			entry, _ := tracks.Get(id)
			record, ok := entry.AsDict()
			if !ok {
				continue
			}
			lib.Tracks[id] = trackFromDict(record)
		}
	}

	if value, ok := dict.Get(keyPlaylists); ok {
		items, _ := value.AsArray()
		lib.Playlists = make([]Playlist, 0, len(items))
		for _, entry := range items {
			record, ok := entry.AsDict()
			if !ok {
				continue
			}
			lib.Playlists = append(lib.Playlists, playlistFromDict(record))
		}
	}

	return lib, nil
}

// Load decodes the library stored at path.
func Load(path string) (*Library, error) {
	root, err := plist.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return FromValue(root)
}

// Track returns the track referenced by a playlist item.
func (l *Library) Track(id int64) (*Track, error) {
	track, ok := l.Tracks[strconv.FormatInt(id, 10)]
	if !ok || track == nil {
		return nil, fmt.Errorf("track id %d: %w", id, ErrTrackNotFound)
	}
	return track, nil
}

func playlistFromDict(d *plist.Dict) Playlist {
	master, _ := d.Get(keyMaster)
	distinguished, _ := d.Get(keyDistinguish)
	folder, _ := d.Get(keyFolder)
	itemsValue, hasItems := d.Get(keyItems)

	p := Playlist{
		PersistentID:       d.String(keyPersistentID),
		ParentPersistentID: d.String(keyParentID),
		Name:               d.String(keyName),
		IsFiltered:         master.Truthy() || distinguished.Truthy(),
	}

	rows, isArray := itemsValue.AsArray()
	p.IsFolder = folder.Truthy() || !hasItems || !isArray
	if p.IsFolder {
		return p
	}

	p.Items = make([]int64, 0, len(rows))
	for _, row := range rows {
		ref, _ := row.AsDict()
		p.Items = append(p.Items, ref.Int(keyTrackID))
	}
	return p
}
