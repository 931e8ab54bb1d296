package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeHTML()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	// The environment only replaces an unset or default library path.
	if path := strings.TrimSpace(c.Paths.LibraryPath); path == "" || path == defaultLibraryPath {
		if value, ok := os.LookupEnv(envLibraryPath); ok && strings.TrimSpace(value) != "" {
			c.Paths.LibraryPath = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}

	var err error
	if c.Paths.LibraryPath, err = expandPath(strings.TrimSpace(c.Paths.LibraryPath)); err != nil {
		return fmt.Errorf("paths.library_path: %w", err)
	}
	if c.Paths.M3UDir, err = expandPath(strings.TrimSpace(c.Paths.M3UDir)); err != nil {
		return fmt.Errorf("paths.m3u_dir: %w", err)
	}
	if c.Paths.HTMLDir, err = expandPath(strings.TrimSpace(c.Paths.HTMLDir)); err != nil {
		return fmt.Errorf("paths.html_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Metrics.TextfilePath, err = expandPath(strings.TrimSpace(c.Metrics.TextfilePath)); err != nil {
		return fmt.Errorf("metrics.textfile_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeHTML() {
	if value, ok := os.LookupEnv(envHTMLMode); ok && strings.TrimSpace(value) != "" {
		c.HTML.Mode = value
		c.HTML.Enabled = true
	}
	c.HTML.Mode = strings.ToLower(strings.TrimSpace(c.HTML.Mode))
	if c.HTML.Mode == "" {
		c.HTML.Mode = HTMLModeSeparated
	}
	if strings.TrimSpace(c.HTML.Title) == "" {
		c.HTML.Title = defaultHTMLTitle
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
