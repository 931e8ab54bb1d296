package testsupport

import (
	"path/filepath"
	"testing"

	"itlexport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The sample library is written under the base directory and referenced by
// paths.library_path.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryPath = WriteLibrary(t, filepath.Join(base, "itunes"))
	cfgVal.Paths.M3UDir = filepath.Join(base, "m3u")
	cfgVal.Paths.HTMLDir = filepath.Join(base, "html")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHTMLMode enables HTML output in the given mode.
func WithHTMLMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.HTML.Enabled = true
		b.cfg.HTML.Mode = mode
	}
}

// WithTranslation enables location prefix translation.
func WithTranslation(oldPrefix, newPrefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Translate.Enabled = true
		b.cfg.Translate.OldPrefix = oldPrefix
		b.cfg.Translate.NewPrefix = newPrefix
	}
}

// WithLibraryXML replaces the sample library with the provided document.
func WithLibraryXML(doc string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LibraryPath = WriteLibraryXML(b.t, filepath.Join(b.baseDir, "custom"), doc)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
