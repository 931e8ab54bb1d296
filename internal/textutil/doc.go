// Package textutil provides the text normalization shared by the library view
// and the hierarchy resolver.
//
// The primary use cases are:
//   - Composing text into Unicode NFC so names and paths render consistently
//   - Percent-decoding file:// locations written by the library exporter
//   - Turning playlist and folder names into safe single path segments
package textutil
