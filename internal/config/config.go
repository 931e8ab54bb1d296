package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// HTML output modes.
const (
	HTMLModeNone      = "none"
	HTMLModeSeparated = "separated"
	HTMLModeCombined  = "combined"
)

// Paths contains the library location and output roots.
type Paths struct {
	LibraryPath string `toml:"library_path"`
	M3UDir      string `toml:"m3u_dir"`
	HTMLDir     string `toml:"html_dir"`
	StateDir    string `toml:"state_dir"`
}

// HTML controls the optional human-readable rendering.
type HTML struct {
	Enabled       bool   `toml:"enabled"`
	Mode          string `toml:"mode"`
	Title         string `toml:"title"`
	LinkLocations bool   `toml:"link_locations"`
}

// Translate rewrites the leading part of every track location.
type Translate struct {
	Enabled   bool   `toml:"enabled"`
	OldPrefix string `toml:"old_prefix"`
	NewPrefix string `toml:"new_prefix"`
}

// Convert contains switches for the conversion pipeline.
type Convert struct {
	CopyLibrary   bool `toml:"copy_library"`
	CleanOutputs  bool `toml:"clean_outputs"`
	RootPlaylists bool `toml:"root_playlists"`
}

// History controls the run history database under the state directory.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Metrics controls the Prometheus textfile written after each run.
type Metrics struct {
	TextfilePath string `toml:"textfile_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for itlexport.
type Config struct {
	Paths     Paths     `toml:"paths"`
	HTML      HTML      `toml:"html"`
	Translate Translate `toml:"translate"`
	Convert   Convert   `toml:"convert"`
	History   History   `toml:"history"`
	Metrics   Metrics   `toml:"metrics"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("itlexport.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and the enabled output roots.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir, c.Paths.M3UDir}
	if c.HTMLEnabled() {
		dirs = append(dirs, c.Paths.HTMLDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HTMLEnabled reports whether any HTML rendering was requested.
func (c *Config) HTMLEnabled() bool {
	return c.HTML.Enabled && c.HTML.Mode != HTMLModeNone
}

// LockPath returns the path of the single-run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "itlexport.lock")
}

// HistoryPath returns the path of the run history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LibraryCopyPath returns where the verified library copy is written.
func (c *Config) LibraryCopyPath() string {
	return filepath.Join(c.Paths.StateDir, "library.xml")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
