package search

import (
	"regexp"

	"outpad/internal/engine/buffer"
)

// ReplaceAll substitutes every literal occurrence of searchstr within the
// region. When the region is empty, or its text trivially equals the search
// or replacement string, the whole document is scanned instead.
//
// The scan boundary is adjusted by each occurrence's length delta so later
// matches are located against the mutated document. The yield callback, if
// non-nil, runs after every substitution; hosts use it to pump their event
// queue during long bulk replacements. There is no cancellation.
//
// Returns the number of substitutions; zero means the call was a no-op.
func ReplaceAll(buf *buffer.Buffer, region buffer.Range, searchstr, replacestr string, matchCase bool, yield func()) int {
	if searchstr == "" {
		return 0
	}

	region = region.Normalize().Clamp(buf.Len())
	start, end := region.Start, region.End

	cursel := buf.TextRange(region.Start, region.End)
	if region.IsEmpty() || cursel == searchstr || cursel == replacestr {
		start, end = 0, buf.Len()
	}

	// Quoting keeps matching literal; a regex scan keeps byte offsets exact
	// under case-insensitive folding, where naive lowercasing can shift them.
	pat := regexp.QuoteMeta(searchstr)
	if !matchCase {
		pat = "(?i)" + pat
	}
	re := regexp.MustCompile(pat)

	count := 0
	pos := start
	for {
		text := buf.Text()
		if pos > len(text) {
			break
		}
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		ms, me := pos+loc[0], pos+loc[1]
		if me > end {
			break
		}

		newEnd, err := buf.Replace(ms, me, replacestr)
		if err != nil {
			break
		}
		end += (newEnd - ms) - (me - ms)
		pos = newEnd
		count++

		if yield != nil {
			yield()
		}
	}
	return count
}
