// Package plist decodes XML property lists into a generic typed value tree.
//
// The decoder is streaming: each element is folded into a Value the moment it
// closes and its children are released, so memory tracks nesting depth rather
// than document size. Only the XML flavour is supported; binary property lists
// are rejected by the XML tokenizer.
//
// Values are self-describing. Callers inspect Kind or use the As* accessors,
// which report false when the value holds a different kind.
package plist
