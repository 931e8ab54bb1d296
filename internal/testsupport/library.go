package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleLibraryXML is a small library exercising folders, filtered records,
// orphaned and forward-referencing playlists, protected tracks, a missing
// track reference and a decomposed (NFD) title.
const SampleLibraryXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Minor Version</key><integer>1</integer>
	<key>Date</key><date>2021-06-01T10:00:00Z</date>
	<key>Show Content Ratings</key><true/>
	<key>Tracks</key>
	<dict>
		<key>100</key>
		<dict>
			<key>Track ID</key><integer>100</integer>
			<key>Name</key><string>Song One</string>
			<key>Artist</key><string>Artist A</string>
			<key>Album</key><string>Album X</string>
			<key>Total Time</key><integer>125000</integer>
			<key>Disc Number</key><integer>1</integer>
			<key>Disc Count</key><integer>2</integer>
			<key>Track Number</key><integer>3</integer>
			<key>Track Count</key><integer>12</integer>
			<key>Year</key><integer>1999</integer>
			<key>Date Added</key><date>2020-01-02T03:04:05Z</date>
			<key>Location</key><string>file:///Users/x/Music/Song%20One.mp3</string>
		</dict>
		<key>101</key>
		<dict>
			<key>Track ID</key><integer>101</integer>
			<key>Name</key><string>Protected</string>
			<key>Total Time</key><integer>200000</integer>
			<key>Location</key><string>file:///Users/x/Music/protected.m4p</string>
		</dict>
		<key>102</key>
		<dict>
			<key>Track ID</key><integer>102</integer>
			<key>Name</key><string>Long Mix</string>
			<key>Artist</key><string>DJ</string>
			<key>Total Time</key><integer>3725000</integer>
			<key>Year</key><integer>9999</integer>
			<key>Location</key><string>file:///Users/x/Music/long%20mix.mp3</string>
		</dict>
		<key>103</key>
		<dict>
			<key>Track ID</key><integer>103</integer>
			<key>Name</key><string>Cafe&#x301;</string>
			<key>Total Time</key><integer>60000</integer>
			<key>Location</key><string>file:///Users/x/Music/Cafe%CC%81.mp3</string>
		</dict>
		<key>104</key>
		<dict>
			<key>Track ID</key><integer>104</integer>
			<key>Name</key><string>No Time</string>
			<key>Location</key><string>file:///Users/x/Music/notime.mp3</string>
		</dict>
	</dict>
	<key>Playlists</key>
	<array>
		<dict>
			<key>Name</key><string>Library</string>
			<key>Master</key><true/>
			<key>Playlist Persistent ID</key><string>MASTER</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>100</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Music</string>
			<key>Distinguished Kind</key><integer>4</integer>
			<key>Playlist Persistent ID</key><string>DIST</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>100</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>A</string>
			<key>Playlist Persistent ID</key><string>A1</string>
			<key>Folder</key><true/>
		</dict>
		<dict>
			<key>Name</key><string>B/Sub</string>
			<key>Playlist Persistent ID</key><string>B2</string>
			<key>Parent Persistent ID</key><string>A1</string>
			<key>Folder</key><true/>
		</dict>
		<dict>
			<key>Name</key><string>P</string>
			<key>Playlist Persistent ID</key><string>P3</string>
			<key>Parent Persistent ID</key><string>B2</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>100</integer></dict>
				<dict><key>Track ID</key><integer>101</integer></dict>
				<dict><key>Track ID</key><integer>102</integer></dict>
				<dict><key>Track ID</key><integer>999</integer></dict>
				<dict><key>Track ID</key><integer>103</integer></dict>
				<dict><key>Track ID</key><integer>104</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Q</string>
			<key>Playlist Persistent ID</key><string>Q4</string>
			<key>Parent Persistent ID</key><string>A1</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>102</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Orphan</string>
			<key>Playlist Persistent ID</key><string>O5</string>
			<key>Parent Persistent ID</key><string>ZZ</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>100</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Forward</string>
			<key>Playlist Persistent ID</key><string>F6</string>
			<key>Parent Persistent ID</key><string>L7</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>100</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Late</string>
			<key>Playlist Persistent ID</key><string>L7</string>
			<key>Folder</key><true/>
		</dict>
		<dict>
			<key>Name</key><string>Top</string>
			<key>Playlist Persistent ID</key><string>T8</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>100</integer></dict>
			</array>
		</dict>
	</array>
</dict>
</plist>
`

// WriteLibrary writes SampleLibraryXML into dir and returns its path.
func WriteLibrary(t testing.TB, dir string) string {
	t.Helper()
	return WriteLibraryXML(t, dir, SampleLibraryXML)
}

// WriteLibraryXML writes doc as "iTunes Music Library.xml" inside dir.
func WriteLibraryXML(t testing.TB, dir, doc string) string {
	t.Helper()

	path := filepath.Join(dir, "iTunes Music Library.xml")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write library: %v", err)
	}
	return path
}
