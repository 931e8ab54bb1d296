package convert

import (
	"itlexport/internal/config"
)

// Options is the fully resolved input of a run. The zero value of an
// optional path disables the corresponding feature.
type Options struct {
	LibraryPath string
	M3UDir      string
	StateDir    string

	// HTMLMode is one of config.HTMLModeNone, HTMLModeSeparated, or
	// HTMLModeCombined. HTMLDir is ignored for HTMLModeNone.
	HTMLMode      string
	HTMLDir       string
	TopLabel      string
	LinkLocations bool

	// OldPrefix is empty when location translation is disabled.
	OldPrefix string
	NewPrefix string

	CopyLibrary   bool
	CleanOutputs  bool
	RootPlaylists bool

	HistoryPath string
	MetricsPath string
}

// OptionsFromConfig flattens cfg into run options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		LibraryPath:   cfg.Paths.LibraryPath,
		M3UDir:        cfg.Paths.M3UDir,
		StateDir:      cfg.Paths.StateDir,
		HTMLMode:      config.HTMLModeNone,
		TopLabel:      cfg.HTML.Title,
		LinkLocations: cfg.HTML.LinkLocations,
		CopyLibrary:   cfg.Convert.CopyLibrary,
		CleanOutputs:  cfg.Convert.CleanOutputs,
		RootPlaylists: cfg.Convert.RootPlaylists,
		MetricsPath:   cfg.Metrics.TextfilePath,
	}
	if cfg.HTMLEnabled() {
		opts.HTMLMode = cfg.HTML.Mode
		opts.HTMLDir = cfg.Paths.HTMLDir
	}
	if cfg.Translate.Enabled {
		opts.OldPrefix = cfg.Translate.OldPrefix
		opts.NewPrefix = cfg.Translate.NewPrefix
	}
	if cfg.History.Enabled {
		opts.HistoryPath = cfg.HistoryPath()
	}
	return opts
}

func (o Options) htmlEnabled() bool {
	return o.HTMLDir != "" && (o.HTMLMode == config.HTMLModeSeparated || o.HTMLMode == config.HTMLModeCombined)
}
