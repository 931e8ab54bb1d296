// Package preflight provides readiness checks for the filesystem paths that
// itlexport reads and writes.
//
// These checks run in two contexts:
//   - The convert command calls RunAll before decoding and refuses to start
//     when a required check fails.
//   - The CLI "itlexport check" command prints every Result as a status line.
//
// Optional outputs are only checked when enabled in the configuration.
package preflight
