package convert_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"itlexport/internal/config"
	"itlexport/internal/convert"
	"itlexport/internal/history"
	"itlexport/internal/plist"
	"itlexport/internal/testsupport"
)

func runConverter(t *testing.T, cfg *config.Config) convert.Summary {
	t.Helper()
	summary, err := convert.New(convert.OptionsFromConfig(cfg), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return summary
}

func listRuns(t *testing.T, cfg *config.Config) []history.Run {
	t.Helper()
	store, err := history.Open(context.Background(), cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer store.Close()
	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return runs
}

func TestRunWritesPlaylistTree(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTranslation("file:///", "/Volumes/Media/"))
	summary := runConverter(t, cfg)

	files := testsupport.ReadTree(t, cfg.Paths.M3UDir)
	wantP := "#EXTM3U\n" +
		"#EXTINF:125,Song One\n" +
		"/Volumes/Media/Users/x/Music/Song One.mp3\n" +
		"#EXTINF:3725,Long Mix\n" +
		"/Volumes/Media/Users/x/Music/long mix.mp3\n" +
		"#EXTINF:60,Caf\u00e9\n" +
		"/Volumes/Media/Users/x/Music/Caf\u00e9.mp3\n"
	if got := files["A/B - Sub/P.m3u"]; got != wantP {
		t.Fatalf("unexpected P.m3u:\n%s", got)
	}
	if got := files["A/Q.m3u"]; got != "#EXTM3U\n#EXTINF:3725,Long Mix\n/Volumes/Media/Users/x/Music/long mix.mp3\n" {
		t.Fatalf("unexpected Q.m3u:\n%s", got)
	}
	if len(files) != 2 {
		t.Fatalf("expected exactly 2 playlists, got %v", keys(files))
	}
	if info, err := os.Stat(filepath.Join(cfg.Paths.M3UDir, "Late")); err != nil || !info.IsDir() {
		t.Fatalf("expected empty folder directory: %v", err)
	}

	if summary.M3UWritten != 2 || summary.Tracks != 5 || summary.Playlists != 10 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Hierarchy.Filtered != 2 || summary.Hierarchy.Orphaned != 3 {
		t.Fatalf("unexpected hierarchy stats: %+v", summary.Hierarchy)
	}
	if summary.M3U.Entries != 4 || summary.M3U.Omitted != 1 || summary.M3U.Failed != 2 {
		t.Fatalf("unexpected m3u stats: %+v", summary.M3U)
	}
	if summary.RunID == "" || len(summary.LibrarySHA256) != 64 {
		t.Fatalf("expected run id and digest: %+v", summary)
	}
	if _, err := os.Stat(cfg.LibraryCopyPath()); err != nil {
		t.Fatalf("expected library copy: %v", err)
	}

	runs := listRuns(t, cfg)
	if len(runs) != 1 || runs[0].RunID != summary.RunID || runs[0].Status != history.StatusCompleted {
		t.Fatalf("unexpected history: %+v", runs)
	}
	if runs[0].EntriesWritten != 4 || runs[0].ItemsSkipped != 3 {
		t.Fatalf("unexpected recorded counts: %+v", runs[0])
	}
}

func TestRunIsByteIdenticalOnRerun(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHTMLMode(config.HTMLModeSeparated))
	runConverter(t, cfg)
	firstM3U := testsupport.ReadTree(t, cfg.Paths.M3UDir)
	firstHTML := testsupport.ReadTree(t, cfg.Paths.HTMLDir)

	runConverter(t, cfg)
	if !reflect.DeepEqual(firstM3U, testsupport.ReadTree(t, cfg.Paths.M3UDir)) {
		t.Fatal("m3u output changed between runs")
	}
	if !reflect.DeepEqual(firstHTML, testsupport.ReadTree(t, cfg.Paths.HTMLDir)) {
		t.Fatal("html output changed between runs")
	}
	if runs := listRuns(t, cfg); len(runs) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(runs))
	}
}

func TestRunSeparatedHTML(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHTMLMode(config.HTMLModeSeparated))
	summary := runConverter(t, cfg)

	files := testsupport.ReadTree(t, cfg.Paths.HTMLDir)
	want := []string{
		"A/B - Sub/P.html",
		"A/B - Sub/index.html",
		"A/Q.html",
		"A/index.html",
		"Late/index.html",
		"index.html",
	}
	if got := keys(files); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected html files %v", got)
	}
	if summary.HTMLWritten != 2 || summary.IndexPages != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.Contains(files["A/B - Sub/P.html"], `const kind = "playlist"`) {
		t.Fatal("expected playlist page")
	}
	if !strings.Contains(files["A/B - Sub/P.html"], `\u003ca href=`) {
		t.Fatal("expected linked track titles by default")
	}
}

func TestRunCombinedHTML(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHTMLMode(config.HTMLModeCombined))
	summary := runConverter(t, cfg)

	files := testsupport.ReadTree(t, cfg.Paths.HTMLDir)
	if got := keys(files); !reflect.DeepEqual(got, []string{"index.html"}) {
		t.Fatalf("expected a single combined document, got %v", got)
	}
	doc := files["index.html"]
	for _, want := range []string{`const kind = "tree"`, `const breadcrumbs = []`, `"B - Sub":{"kind":"folder"`, `"Late":{"kind":"folder","children":{}}`} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in combined document", want)
		}
	}
	if summary.HTMLWritten != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunDecodeErrorIsFatalAndKeepsOutputs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLibraryXML(
		`<plist><dict><key>Tracks</key><dict><key>1</key><uid>7</uid></dict></dict></plist>`,
	))
	stale := filepath.Join(cfg.Paths.M3UDir, "old.m3u")
	if err := os.MkdirAll(cfg.Paths.M3UDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("#EXTM3U\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := convert.New(convert.OptionsFromConfig(cfg), nil).Run(context.Background())
	if !errors.Is(err, plist.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
	if _, statErr := os.Stat(stale); statErr != nil {
		t.Fatal("previous output must survive a failed decode")
	}

	runs := listRuns(t, cfg)
	if len(runs) != 1 || runs[0].Status != history.StatusFailed || !strings.Contains(runs[0].ErrorMessage, "uid") {
		t.Fatalf("expected failed run in history, got %+v", runs)
	}
}

const dotDotLibraryXML = `<plist version="1.0"><dict>
	<key>Tracks</key><dict>
		<key>1</key><dict>
			<key>Track ID</key><integer>1</integer>
			<key>Name</key><string>Song</string>
			<key>Total Time</key><integer>1000</integer>
			<key>Location</key><string>file:///music/song.mp3</string>
		</dict>
	</dict>
	<key>Playlists</key><array>
		<dict>
			<key>Name</key><string>..</string>
			<key>Playlist Persistent ID</key><string>UP</string>
			<key>Folder</key><true/>
		</dict>
		<dict>
			<key>Name</key><string>Evil</string>
			<key>Playlist Persistent ID</key><string>EV</string>
			<key>Parent Persistent ID</key><string>UP</string>
			<key>Playlist Items</key><array><dict><key>Track ID</key><integer>1</integer></dict></array>
		</dict>
	</array>
</dict></plist>`

func TestRunKeepsDotDotFolderInsideOutputRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLibraryXML(dotDotLibraryXML))
	runConverter(t, cfg)

	files := testsupport.ReadTree(t, cfg.Paths.M3UDir)
	if _, ok := files["_/Evil.m3u"]; !ok {
		t.Fatalf("expected _/Evil.m3u inside the m3u root, got %v", keys(files))
	}
	escaped := filepath.Join(filepath.Dir(cfg.Paths.M3UDir), "Evil.m3u")
	if _, err := os.Stat(escaped); !os.IsNotExist(err) {
		t.Fatalf("playlist escaped the output root to %s", escaped)
	}

	cfg.HTML.Enabled = true
	cfg.HTML.Mode = config.HTMLModeCombined
	runConverter(t, cfg)
	doc := testsupport.ReadFile(t, filepath.Join(cfg.Paths.HTMLDir, "index.html"))
	if !strings.Contains(doc, `"_":{"kind":"folder"`) {
		t.Fatal("expected the sanitized folder in the combined tree")
	}
}

func TestRunCleansStaleOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stale := filepath.Join(cfg.Paths.M3UDir, "Removed", "Gone.m3u")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("#EXTM3U\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runConverter(t, cfg)
	if _, err := os.Stat(filepath.Dir(stale)); !os.IsNotExist(err) {
		t.Fatal("expected stale output to be removed")
	}

	cfg.Convert.CleanOutputs = false
	if err := os.WriteFile(filepath.Join(cfg.Paths.M3UDir, "keep.m3u"), []byte("#EXTM3U\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runConverter(t, cfg)
	if _, err := os.Stat(filepath.Join(cfg.Paths.M3UDir, "keep.m3u")); err != nil {
		t.Fatal("expected output to be kept when cleaning is disabled")
	}
}

func TestRunRootPlaylists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Convert.RootPlaylists = true
	summary := runConverter(t, cfg)

	files := testsupport.ReadTree(t, cfg.Paths.M3UDir)
	if _, ok := files["Top.m3u"]; !ok {
		t.Fatalf("expected Top.m3u at the root, got %v", keys(files))
	}
	if summary.Hierarchy.Orphaned != 2 {
		t.Fatalf("unexpected orphan count %d", summary.Hierarchy.Orphaned)
	}
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Metrics.TextfilePath = filepath.Join(testsupport.BaseDir(cfg), "collector", "itlexport.prom")
	runConverter(t, cfg)

	text := testsupport.ReadFile(t, cfg.Metrics.TextfilePath)
	for _, want := range []string{
		`itlexport_playlists_written_total{format="m3u"} 2`,
		`itlexport_playlists_skipped_total{reason="orphaned"} 3`,
		`itlexport_library_tracks 5`,
		`itlexport_last_run_success 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in metrics:\n%s", want, text)
		}
	}
}

func TestRunRefusesWhenLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.StateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(cfg.LockPath())
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer held.Unlock()

	_, err = convert.New(convert.OptionsFromConfig(cfg), nil).Run(context.Background())
	if !errors.Is(err, convert.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := convert.New(convert.OptionsFromConfig(cfg), nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := convert.OptionsFromConfig(cfg)
	if opts.HTMLMode != config.HTMLModeNone || opts.HTMLDir != "" {
		t.Fatalf("expected html disabled: %+v", opts)
	}
	if opts.OldPrefix != "" || opts.NewPrefix != "" {
		t.Fatalf("expected no translation: %+v", opts)
	}
	if opts.HistoryPath != cfg.HistoryPath() {
		t.Fatalf("unexpected history path %q", opts.HistoryPath)
	}

	cfg.History.Enabled = false
	cfg.Translate.Enabled = true
	cfg.HTML.Enabled = true
	cfg.HTML.Mode = config.HTMLModeCombined
	opts = convert.OptionsFromConfig(cfg)
	if opts.HistoryPath != "" || opts.OldPrefix != "file:///" || opts.HTMLMode != config.HTMLModeCombined || opts.HTMLDir == "" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
