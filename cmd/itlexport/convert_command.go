package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"itlexport/internal/config"
	"itlexport/internal/convert"
	"itlexport/internal/logging"
	"itlexport/internal/preflight"
)

type convertFlags struct {
	library   string
	m3uDir    string
	htmlDir   string
	htmlMode  string
	oldPrefix string
	newPrefix string
	jsonOut   bool
}

type convertReport struct {
	RunID       string  `json:"run_id"`
	Library     string  `json:"library"`
	SHA256      string  `json:"sha256,omitempty"`
	Tracks      int     `json:"tracks"`
	Playlists   int     `json:"playlists"`
	Folders     int     `json:"folders"`
	M3UWritten  int     `json:"m3u_written"`
	Entries     int     `json:"entries"`
	Omitted     int     `json:"omitted"`
	Failed      int     `json:"failed"`
	HTMLWritten int     `json:"html_written"`
	IndexPages  int     `json:"index_pages"`
	Filtered    int     `json:"filtered"`
	Orphaned    int     `json:"orphaned"`
	Seconds     float64 `json:"duration_seconds"`
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write M3U playlists (and optional HTML pages) from the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyConvertFlags(cmd, *base, flags)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			results := preflight.RunAll(cfg)
			if failed := preflight.Failed(results); len(failed) > 0 {
				errOut := cmd.ErrOrStderr()
				for _, line := range preflightLines(results, shouldColorize(errOut)) {
					fmt.Fprintln(errOut, line)
				}
				return fmt.Errorf("preflight failed: %d check(s) did not pass", len(failed))
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			summary, err := convert.New(convert.OptionsFromConfig(cfg), logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			report := newConvertReport(summary)
			if flags.jsonOut {
				return printJSON(cmd, report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderConvertReport(report, summary.Duration()))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.library, "library", "", "Library XML file (overrides paths.library_path)")
	cmd.Flags().StringVar(&flags.m3uDir, "m3u-dir", "", "M3U output root (overrides paths.m3u_dir)")
	cmd.Flags().StringVar(&flags.htmlDir, "html-dir", "", "HTML output root (overrides paths.html_dir)")
	cmd.Flags().StringVar(&flags.htmlMode, "html-mode", "", "HTML output: none, separated, or combined")
	cmd.Flags().StringVar(&flags.oldPrefix, "old-prefix", "", "Location prefix to replace")
	cmd.Flags().StringVar(&flags.newPrefix, "new-prefix", "", "Replacement for --old-prefix")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Output the run summary as JSON")
	return cmd
}

// applyConvertFlags returns a copy of cfg with explicitly set flags applied
// and the result re-validated.
func applyConvertFlags(cmd *cobra.Command, cfg config.Config, flags convertFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed

	paths := []struct {
		flag  string
		value string
		dst   *string
	}{
		{"library", flags.library, &cfg.Paths.LibraryPath},
		{"m3u-dir", flags.m3uDir, &cfg.Paths.M3UDir},
		{"html-dir", flags.htmlDir, &cfg.Paths.HTMLDir},
	}
	for _, p := range paths {
		if !changed(p.flag) {
			continue
		}
		expanded, err := config.ExpandPath(p.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", p.flag, err)
		}
		*p.dst = expanded
	}

	if changed("html-mode") {
		mode := strings.ToLower(strings.TrimSpace(flags.htmlMode))
		cfg.HTML.Mode = mode
		cfg.HTML.Enabled = mode != config.HTMLModeNone
	}
	if changed("old-prefix") {
		cfg.Translate.Enabled = true
		cfg.Translate.OldPrefix = flags.oldPrefix
	}
	if changed("new-prefix") {
		cfg.Translate.NewPrefix = flags.newPrefix
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newConvertReport(s convert.Summary) convertReport {
	return convertReport{
		RunID:       s.RunID,
		Library:     s.LibraryPath,
		SHA256:      s.LibrarySHA256,
		Tracks:      s.Tracks,
		Playlists:   s.Playlists,
		Folders:     s.Hierarchy.Folders,
		M3UWritten:  s.M3UWritten,
		Entries:     s.M3U.Entries,
		Omitted:     s.M3U.Omitted,
		Failed:      s.M3U.Failed,
		HTMLWritten: s.HTMLWritten,
		IndexPages:  s.IndexPages,
		Filtered:    s.Hierarchy.Filtered,
		Orphaned:    s.Hierarchy.Orphaned,
		Seconds:     s.Duration().Seconds(),
	}
}

func renderConvertReport(r convertReport, elapsed time.Duration) string {
	count := func(n int) string { return humanize.Comma(int64(n)) }
	return renderKeyValues([]keyValue{
		{"Run", r.RunID},
		{"Tracks", count(r.Tracks)},
		{"Playlist records", count(r.Playlists)},
		{"Folders", count(r.Folders)},
		{"M3U playlists", count(r.M3UWritten)},
		{"Entries written", count(r.Entries)},
		{"Tracks omitted", count(r.Omitted)},
		{"Tracks failed", count(r.Failed)},
		{"HTML playlists", count(r.HTMLWritten)},
		{"Index pages", count(r.IndexPages)},
		{"Filtered records", count(r.Filtered)},
		{"Orphaned playlists", count(r.Orphaned)},
		{"Duration", elapsed.Round(time.Millisecond).String()},
	})
}
