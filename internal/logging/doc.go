// Package logging assembles structured slog loggers for itlexport.
//
// It owns the console and JSON handlers, resolves level and output plumbing
// from configuration, and exposes attribute helpers plus a context-aware
// run identifier so every line written during one conversion can be
// correlated. A no-op logger is provided for tests and optional wiring.
package logging
