// Package metrics records Prometheus instrumentation for a conversion run.
//
// itlexport is a batch tool, so metrics are collected into a per-run
// registry and written once to a node_exporter textfile-collector file
// instead of being served over HTTP. All metrics are prefixed with
// "itlexport_".
//
//   - PlaylistsWritten / TracksWritten: output counts by format (m3u, html)
//   - TracksSkipped: playlist items left out, by reason (omitted, failed)
//   - PlaylistsSkipped: records without output, by reason (filtered, orphaned)
//   - LibraryTracks / LibraryPlaylists: size of the decoded library
//   - RunDuration, LastRunTimestamp, LastRunSuccess: run outcome
package metrics
