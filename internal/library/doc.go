// Package library exposes a typed view of a decoded iTunes music library.
//
// FromValue turns the generic property-list tree into a track table and an
// ordered playlist list. Track methods format the display attributes used by
// the renderers (duration, track/disc counters, year, date added) and resolve
// playable locations, including percent-decoding and optional prefix
// translation for libraries exported from another machine.
package library
