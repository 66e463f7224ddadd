// Package cursor provides the selection abstraction used throughout the
// editor. A Selection is an anchor/head pair of byte offsets; the order of
// the two endpoints determines the selection direction. A collapsed
// selection (anchor == head) is a plain cursor.
package cursor
