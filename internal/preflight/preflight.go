package preflight

import (
	"path/filepath"

	"itlexport/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// Output checks are only run when the corresponding feature is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckLibraryFile(cfg.Paths.LibraryPath),
		CheckOutputDirectory("State directory", cfg.Paths.StateDir),
		CheckOutputDirectory("M3U directory", cfg.Paths.M3UDir),
	}
	if cfg.HTMLEnabled() {
		results = append(results, CheckOutputDirectory("HTML directory", cfg.Paths.HTMLDir))
	}
	if cfg.Metrics.TextfilePath != "" {
		results = append(results, CheckOutputDirectory("Metrics directory", filepath.Dir(cfg.Metrics.TextfilePath)))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
