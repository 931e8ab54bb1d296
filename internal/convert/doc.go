// Package convert runs one library conversion end to end.
//
// A Converter takes the single-run lock in the state directory, optionally
// copies the library file with checksum verification, decodes it, clears
// the output roots, and drives the hierarchy resolver once per output
// format: M3U always, then HTML pages or the combined tree when enabled.
// Each run gets a UUID that is attached to every log line, recorded in the
// run history database, and reflected in the Prometheus textfile.
package convert
