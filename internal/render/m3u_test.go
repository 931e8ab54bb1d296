package render_test

import (
	"bytes"
	"errors"
	"testing"

	"itlexport/internal/library"
	"itlexport/internal/render"
)

func TestM3UWritesExtendedPlaylist(t *testing.T) {
	lib := loadSample(t)
	var buf bytes.Buffer

	stats, err := render.M3U(&buf, lib, playlist(t, lib, "P3"), render.Location{OldPrefix: "file:///", NewPrefix: "/Volumes/Media/"}, nil)
	if err != nil {
		t.Fatalf("M3U: %v", err)
	}

	want := "#EXTM3U\n" +
		"#EXTINF:125,Song One\n" +
		"/Volumes/Media/Users/x/Music/Song One.mp3\n" +
		"#EXTINF:3725,Long Mix\n" +
		"/Volumes/Media/Users/x/Music/long mix.mp3\n" +
		"#EXTINF:60,Caf\u00e9\n" +
		"/Volumes/Media/Users/x/Music/Caf\u00e9.mp3\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected playlist:\n%s\nwant:\n%s", got, want)
	}
	// Protected is omitted, 999 is unknown and No Time has no duration.
	if stats != (render.PlaylistStats{Entries: 3, Omitted: 1, Failed: 2}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestM3UWithoutTranslationKeepsURI(t *testing.T) {
	lib := loadSample(t)
	var buf bytes.Buffer

	if _, err := render.M3U(&buf, lib, playlist(t, lib, "Q4"), render.Location{}, nil); err != nil {
		t.Fatalf("M3U: %v", err)
	}
	want := "#EXTM3U\n#EXTINF:3725,Long Mix\nfile:///Users/x/Music/long mix.mp3\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestM3UEmptyPlaylistWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	stats, err := render.M3U(&buf, &library.Library{}, &library.Playlist{Name: "Empty", Items: []int64{}}, render.Location{}, nil)
	if err != nil {
		t.Fatalf("M3U: %v", err)
	}
	if buf.String() != "#EXTM3U\n" || stats.Entries != 0 {
		t.Fatalf("unexpected output %q %+v", buf.String(), stats)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestM3UReturnsWriteErrors(t *testing.T) {
	lib := loadSample(t)
	if _, err := render.M3U(failingWriter{}, lib, playlist(t, lib, "P3"), render.Location{}, nil); err == nil {
		t.Fatal("expected write error")
	}
}
