package config

const (
	defaultConfigPath  = "~/.config/itlexport/config.toml"
	defaultLibraryPath = "~/Music/iTunes/iTunes Music Library.xml"
	defaultM3UDir      = "~/.local/share/itlexport/playlists"
	defaultHTMLDir     = "~/.local/share/itlexport/html"
	defaultStateDir    = "~/.local/share/itlexport"
	defaultHTMLTitle   = "iTunes"
	defaultOldPrefix   = "file:///"
	defaultNewPrefix   = "/"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	envLibraryPath     = "ITLEXPORT_LIBRARY_PATH"
	envHTMLMode        = "ITLEXPORT_HTML_MODE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryPath: defaultLibraryPath,
			M3UDir:      defaultM3UDir,
			HTMLDir:     defaultHTMLDir,
			StateDir:    defaultStateDir,
		},
		HTML: HTML{
			Enabled:       false,
			Mode:          HTMLModeSeparated,
			Title:         defaultHTMLTitle,
			LinkLocations: true,
		},
		Translate: Translate{
			Enabled:   false,
			OldPrefix: defaultOldPrefix,
			NewPrefix: defaultNewPrefix,
		},
		Convert: Convert{
			CopyLibrary:  true,
			CleanOutputs: true,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
