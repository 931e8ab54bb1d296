package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"itlexport/internal/library"
)

type libraryStats struct {
	Path            string  `json:"path"`
	SizeBytes       int64   `json:"size_bytes"`
	Tracks          int     `json:"tracks"`
	Protected       int     `json:"protected"`
	WithoutLocation int     `json:"without_location"`
	WithoutTime     int     `json:"without_time"`
	PlayTimeSeconds float64 `json:"play_time_seconds"`
	Records         int     `json:"playlist_records"`
	Folders         int     `json:"folders"`
	Playlists       int     `json:"playlists"`
	Filtered        int     `json:"filtered"`
	Items           int     `json:"playlist_items"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the library's tracks and playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.LibraryPath
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("inspect library: %w", err)
			}
			lib, err := library.Load(path)
			if err != nil {
				return err
			}
			stats := collectLibraryStats(lib)
			stats.Path = path
			stats.SizeBytes = info.Size()

			if jsonOut {
				return printJSON(cmd, stats)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLibraryStats(stats))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output statistics as JSON")
	return cmd
}

func collectLibraryStats(lib *library.Library) libraryStats {
	var stats libraryStats
	var total time.Duration
	stats.Tracks = len(lib.Tracks)
	for _, track := range lib.Tracks {
		switch {
		case track.Location == "":
			stats.WithoutLocation++
		case track.Ignored():
			stats.Protected++
		}
		if track.TotalTime <= 0 {
			stats.WithoutTime++
			continue
		}
		total += time.Duration(track.TotalTime) * time.Millisecond
	}
	stats.PlayTimeSeconds = total.Seconds()

	stats.Records = len(lib.Playlists)
	for _, p := range lib.Playlists {
		switch {
		case p.IsFiltered:
			stats.Filtered++
		case p.IsFolder:
			stats.Folders++
		default:
			stats.Playlists++
			stats.Items += len(p.Items)
		}
	}
	return stats
}

func renderLibraryStats(s libraryStats) string {
	count := func(n int) string { return humanize.Comma(int64(n)) }
	playTime := time.Duration(s.PlayTimeSeconds * float64(time.Second)).Round(time.Second)
	return renderKeyValues([]keyValue{
		{"Library", s.Path},
		{"Size", humanize.Bytes(uint64(s.SizeBytes))},
		{"Tracks", count(s.Tracks)},
		{"Protected (.m4p)", count(s.Protected)},
		{"Without location", count(s.WithoutLocation)},
		{"Without total time", count(s.WithoutTime)},
		{"Play time", playTime.String()},
		{"Playlist records", count(s.Records)},
		{"Folders", count(s.Folders)},
		{"Playlists", count(s.Playlists)},
		{"Filtered", count(s.Filtered)},
		{"Playlist items", count(s.Items)},
	})
}
