// Package search implements region-bounded find, replace, and replace-all
// over a text buffer.
//
// All operations are confined to a caller-supplied region: matches that
// reach outside it are treated as not found, and directional searches wrap
// around its bounds exactly once. Find uses regular expressions; replace-all
// matches literally. Absence of a match is a boolean outcome, never an
// error; only an unparsable pattern produces one.
package search
