// Package render turns resolved playlists into on-disk artifacts.
//
// M3U writes one extended M3U playlist. HTMLPages writes one page per leaf
// playlist plus an index.html per output directory. Tree collects the whole
// resolved hierarchy into a single combined document. Every page embeds its
// data as JSON together with a breadcrumb trail computed by Breadcrumbs.
//
// Per-track failures (unknown track ids, attributes that cannot be
// formatted) are logged and skipped; write failures are returned.
package render
