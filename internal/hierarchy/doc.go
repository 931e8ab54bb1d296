// Package hierarchy rebuilds the nested folder layout of a library from its
// flat playlist records.
//
// Records reference their folder through a parent persistent ID. The resolver
// walks the records once in document order and keeps an ID-to-path table for
// folders it has already placed. A playlist whose folder has not been placed
// yet (missing, filtered, or listed later in the document) is skipped.
package hierarchy
