// Package buffer provides a thread-safe, offset-addressed text store with a
// line index. It is the foundation the region tracker, search engine, and
// renderer all operate on.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Coordinate conversion between byte offsets and line/column positions
//   - Line ending normalization on load and on every insert
//   - Grapheme-cluster stepping for cursor movement
//   - A revision counter for cache invalidation
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Delete(0, 7)            // "Beautiful World!"
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//   - Range: half-open byte range [Start, End)
//
// All Buffer methods clamp or reject out-of-range positions; mutation
// methods return explicit errors rather than panicking.
package buffer
