package search

import (
	"fmt"
	"regexp"

	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
)

// Query describes a single find or find-and-replace step.
type Query struct {
	// Pattern is the search pattern, interpreted as a regular expression.
	Pattern string
	// Replacement is the text substituted when Replace is set.
	Replacement string
	// Backwards searches toward the region start instead of the end.
	Backwards bool
	// Replace substitutes the current selection when it already matches.
	Replace bool
	// MatchCase disables the engine's case folding.
	MatchCase bool
}

// Result is the outcome of a find/replace step.
type Result struct {
	// Selection covers the match (or the inserted replacement). The head
	// sits at the directional edge so a repeated search continues past it.
	Selection cursor.Selection
	// Found reports whether a match was located within the region.
	Found bool
	// Replaced reports whether text was substituted.
	Replaced bool
}

// FindReplace searches for q.Pattern within the region, starting from the
// current selection and moving in the requested direction.
//
// The contract follows the region-scoped find cycle:
//
//   - An empty pattern is never found.
//   - If the current selection already matches the pattern and q.Replace is
//     set, the selection is substituted in place and the returned selection
//     surrounds the inserted text.
//   - Otherwise the scan starts at the directional edge of the selection
//     and wraps around the region bounds once before giving up.
//   - Zero-width matches advance the scan position by at least one byte so
//     patterns like `.*` cannot stall the cycle.
//   - A match reaching outside the region is treated as not found.
//
// The only error condition is a pattern the regex engine rejects.
func FindReplace(buf *buffer.Buffer, region buffer.Range, sel cursor.Selection, q Query) (Result, error) {
	if q.Pattern == "" {
		return Result{Selection: sel}, nil
	}

	pat := q.Pattern
	if !q.MatchCase {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return Result{}, fmt.Errorf("compile pattern: %w", err)
	}

	text := buf.Text()
	region = region.Normalize().Clamp(len(text))
	sel = sel.Clamp(len(text))
	orig := sel

	if re.MatchString(text[sel.Start():sel.End()]) {
		if q.Replace {
			start := sel.Start()
			end, rerr := buf.Replace(start, sel.End(), q.Replacement)
			if rerr != nil {
				return Result{}, rerr
			}
			// Head at the start so the inserted text stays surrounded.
			return Result{
				Selection: cursor.NewSelection(end, start),
				Found:     true,
				Replaced:  true,
			}, nil
		}
		if q.Backwards {
			sel = sel.CollapseToStart()
		} else {
			sel = sel.CollapseToEnd()
		}
	}

	// Directional scan position: past the selection for forward search,
	// before it for backward search.
	pos := sel.End()
	if q.Backwards {
		pos = sel.Start()
	}

	m, ok := findFrom(re, text, pos, q.Backwards)

	// Zero-width match: advance at least one byte or the cycle stalls.
	// Forward bumps past the region end wrap to the region start; backward
	// steps are floored there without wrapping.
	if ok && m.IsEmpty() {
		if q.Backwards {
			if m.Start == pos {
				pos--
				if pos < region.Start {
					pos = region.Start
				}
				m, ok = findFrom(re, text, pos, true)
			}
		} else {
			pos++
			if pos > region.End {
				pos = region.Start
			}
			m, ok = findFrom(re, text, pos, false)
		}
	}

	if !ok || !region.ContainsRange(m) {
		// Loop around the region before reporting failure.
		if q.Backwards {
			pos = region.End
		} else {
			pos = region.Start
		}
		m, ok = findFrom(re, text, pos, q.Backwards)
		if !ok || !region.ContainsRange(m) {
			return Result{Selection: orig}, nil
		}
	}

	return Result{
		Selection: cursor.NewSelection(m.Start, m.End),
		Found:     true,
	}, nil
}

// findFrom locates the nearest match in the given direction. Forward search
// returns the first match starting at or after pos; backward search returns
// the last match ending at or before pos. The scan covers the whole
// document; region clipping happens in the caller.
func findFrom(re *regexp.Regexp, text string, pos buffer.ByteOffset, backwards bool) (buffer.Range, bool) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}

	if !backwards {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			return buffer.Range{}, false
		}
		return buffer.NewRange(pos+loc[0], pos+loc[1]), true
	}

	var best buffer.Range
	found := false
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[1] > pos {
			break
		}
		best = buffer.NewRange(loc[0], loc[1])
		found = true
	}
	return best, found
}
