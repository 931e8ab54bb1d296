package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateHTML(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryPath == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.library_path is required. Set %s or edit %s (create with 'itlexport config init')", envLibraryPath, defaultPath)
	}
	if c.Paths.M3UDir == "" {
		return errors.New("paths.m3u_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if within(c.Paths.StateDir, c.Paths.M3UDir) {
		return errors.New("paths.state_dir must not be paths.m3u_dir or below it; stale output cleanup would remove it")
	}
	return nil
}

func (c *Config) validateHTML() error {
	switch c.HTML.Mode {
	case HTMLModeNone, HTMLModeSeparated, HTMLModeCombined:
	default:
		return fmt.Errorf("html.mode must be one of none, separated, combined (got %q)", c.HTML.Mode)
	}
	if c.HTMLEnabled() {
		if c.Paths.HTMLDir == "" {
			return errors.New("paths.html_dir must be set when html output is enabled")
		}
		if within(c.Paths.HTMLDir, c.Paths.M3UDir) || within(c.Paths.M3UDir, c.Paths.HTMLDir) {
			return errors.New("paths.html_dir and paths.m3u_dir must not overlap")
		}
		if within(c.Paths.StateDir, c.Paths.HTMLDir) {
			return errors.New("paths.state_dir must not be paths.html_dir or below it; stale output cleanup would remove it")
		}
	}
	return nil
}

// within reports whether path is dir or lies below it. Output directories
// may sit inside the state directory, never the reverse.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (c *Config) validateTranslate() error {
	if c.Translate.Enabled && c.Translate.OldPrefix == "" {
		return errors.New("translate.old_prefix must be set when translation is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
