// Package main hosts the itlexport CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, applies per-command
// flag overrides, and hands the work to the internal packages: convert runs
// the export pipeline, while tree, stats, history, and check are read-only
// views over the library, the run history, and the environment.
package main
