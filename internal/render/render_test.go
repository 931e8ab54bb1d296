package render_test

import (
	"strings"
	"testing"

	"itlexport/internal/library"
	"itlexport/internal/plist"
	"itlexport/internal/testsupport"
)

func loadSample(t *testing.T) *library.Library {
	t.Helper()
	root, err := plist.Decode(strings.NewReader(testsupport.SampleLibraryXML))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	lib, err := library.FromValue(root)
	if err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	return lib
}

func playlist(t *testing.T, lib *library.Library, id string) *library.Playlist {
	t.Helper()
	for i := range lib.Playlists {
		if lib.Playlists[i].PersistentID == id {
			return &lib.Playlists[i]
		}
	}
	t.Fatalf("playlist %s not found", id)
	return nil
}

func assertOrder(t *testing.T, doc string, parts ...string) {
	t.Helper()
	last := -1
	for _, part := range parts {
		idx := strings.Index(doc, part)
		if idx < 0 {
			t.Fatalf("expected %q in output:\n%s", part, doc)
		}
		if idx < last {
			t.Fatalf("expected %q after previous parts in output:\n%s", part, doc)
		}
		last = idx
	}
}
