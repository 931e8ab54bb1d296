package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"itlexport/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ITLEXPORT_LIBRARY_PATH", "")
	t.Setenv("ITLEXPORT_HTML_MODE", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLibrary := filepath.Join(tempHome, "Music", "iTunes", "iTunes Music Library.xml")
	if cfg.Paths.LibraryPath != wantLibrary {
		t.Fatalf("unexpected library path: got %q want %q", cfg.Paths.LibraryPath, wantLibrary)
	}
	if cfg.Paths.M3UDir != filepath.Join(tempHome, ".local", "share", "itlexport", "playlists") {
		t.Fatalf("unexpected m3u dir: %q", cfg.Paths.M3UDir)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, ".local", "share", "itlexport") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.HTMLEnabled() {
		t.Fatal("expected html output disabled by default")
	}
	if cfg.HTML.Mode != config.HTMLModeSeparated || cfg.HTML.Title != "iTunes" {
		t.Fatalf("unexpected html defaults: %+v", cfg.HTML)
	}
	if cfg.Translate.Enabled {
		t.Fatal("expected translation disabled by default")
	}
	if !cfg.Convert.CopyLibrary || !cfg.Convert.CleanOutputs || cfg.Convert.RootPlaylists {
		t.Fatalf("unexpected convert defaults: %+v", cfg.Convert)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.LockPath() != filepath.Join(cfg.Paths.StateDir, "itlexport.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ITLEXPORT_LIBRARY_PATH", "")
	t.Setenv("ITLEXPORT_HTML_MODE", "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `[paths]
library_path = "~/lib.xml"
m3u_dir = "~/out/m3u"
html_dir = "~/out/html"

[html]
enabled = true
mode = "Combined"
title = "  "

[translate]
enabled = true
old_prefix = "file:///Users/me/Music/"
new_prefix = "/srv/music/"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.LibraryPath != filepath.Join(tempHome, "lib.xml") {
		t.Fatalf("unexpected library path: %q", cfg.Paths.LibraryPath)
	}
	if cfg.Paths.HTMLDir != filepath.Join(tempHome, "out", "html") {
		t.Fatalf("unexpected html dir: %q", cfg.Paths.HTMLDir)
	}
	if cfg.HTML.Mode != config.HTMLModeCombined || !cfg.HTMLEnabled() {
		t.Fatalf("expected combined html mode, got %+v", cfg.HTML)
	}
	if cfg.HTML.Title != "iTunes" {
		t.Fatalf("expected blank title to fall back, got %q", cfg.HTML.Title)
	}
	if cfg.Translate.NewPrefix != "/srv/music/" {
		t.Fatalf("unexpected new prefix: %q", cfg.Translate.NewPrefix)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestEnvironmentFallbacks(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ITLEXPORT_LIBRARY_PATH", "~/exported.xml")
	t.Setenv("ITLEXPORT_HTML_MODE", "combined")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.LibraryPath != filepath.Join(tempHome, "exported.xml") {
		t.Fatalf("expected library path from env, got %q", cfg.Paths.LibraryPath)
	}
	if !cfg.HTMLEnabled() || cfg.HTML.Mode != config.HTMLModeCombined {
		t.Fatalf("expected html mode from env, got %+v", cfg.HTML)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown html mode",
			mutate:  func(c *config.Config) { c.HTML.Mode = "fancy" },
			wantErr: "html.mode",
		},
		{
			name: "html dir equals m3u dir",
			mutate: func(c *config.Config) {
				c.HTML.Enabled = true
				c.Paths.HTMLDir = c.Paths.M3UDir
			},
			wantErr: "paths.html_dir",
		},
		{
			name: "html dir inside m3u dir",
			mutate: func(c *config.Config) {
				c.HTML.Enabled = true
				c.Paths.HTMLDir = filepath.Join(c.Paths.M3UDir, "site")
			},
			wantErr: "paths.html_dir",
		},
		{
			name: "m3u dir inside html dir",
			mutate: func(c *config.Config) {
				c.HTML.Enabled = true
				c.Paths.M3UDir = filepath.Join(c.Paths.HTMLDir, "playlists")
			},
			wantErr: "paths.html_dir",
		},
		{
			name:    "state dir equals m3u dir",
			mutate:  func(c *config.Config) { c.Paths.StateDir = c.Paths.M3UDir },
			wantErr: "paths.state_dir",
		},
		{
			name:    "state dir inside m3u dir",
			mutate:  func(c *config.Config) { c.Paths.StateDir = filepath.Join(c.Paths.M3UDir, "state") },
			wantErr: "paths.state_dir",
		},
		{
			name: "state dir equals html dir",
			mutate: func(c *config.Config) {
				c.HTML.Enabled = true
				c.Paths.StateDir = c.Paths.HTMLDir + string(filepath.Separator)
			},
			wantErr: "paths.state_dir",
		},
		{
			name: "translation without prefix",
			mutate: func(c *config.Config) {
				c.Translate.Enabled = true
				c.Translate.OldPrefix = ""
			},
			wantErr: "translate.old_prefix",
		},
		{
			name:    "missing library",
			mutate:  func(c *config.Config) { c.Paths.LibraryPath = "" },
			wantErr: "paths.library_path",
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAllowsOutputsBelowStateDir(t *testing.T) {
	cfg := config.Default()
	cfg.HTML.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default layout should validate: %v", err)
	}
	cfg.Paths.StateDir = filepath.Join(cfg.Paths.M3UDir, "..", "state")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sibling state dir should validate: %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.HTML.Mode != config.HTMLModeSeparated {
		t.Fatalf("unexpected sample html mode %q", cfg.HTML.Mode)
	}
	if cfg.Translate.OldPrefix != "file:///" {
		t.Fatalf("unexpected sample old prefix %q", cfg.Translate.OldPrefix)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.M3UDir = filepath.Join(base, "m3u")
	cfg.Paths.HTMLDir = filepath.Join(base, "html")
	cfg.HTML.Enabled = true

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.M3UDir, cfg.Paths.HTMLDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
