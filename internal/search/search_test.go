package search

import (
	"testing"

	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
)

func fullRegion(buf *buffer.Buffer) buffer.Range {
	return buffer.NewRange(0, buf.Len())
}

func TestFindEmptyPatternNotFound(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(0), Query{Pattern: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Error("empty pattern must not be found")
	}
}

func TestFindInvalidPattern(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar")

	_, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(0), Query{Pattern: "("})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestFindForward(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(0),
		Query{Pattern: "foo", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected match")
	}
	if res.Selection.Anchor != 0 || res.Selection.Head != 3 {
		t.Errorf("expected selection 0->3, got %v", res.Selection)
	}
}

func TestFindNextSkipsCurrentMatch(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	// Selection already sits on the first occurrence.
	res, err := FindReplace(buf, fullRegion(buf), cursor.NewSelection(0, 3),
		Query{Pattern: "foo", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected match")
	}
	if res.Selection.Anchor != 8 || res.Selection.Head != 11 {
		t.Errorf("expected selection 8->11, got %v", res.Selection)
	}
}

func TestFindForwardWrapsToRegionStart(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewSelection(8, 11),
		Query{Pattern: "foo", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected wrap-around match")
	}
	if res.Selection.Anchor != 0 || res.Selection.Head != 3 {
		t.Errorf("expected selection 0->3, got %v", res.Selection)
	}
}

func TestFindBackward(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(5),
		Query{Pattern: "foo", MatchCase: true, Backwards: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected match")
	}
	if res.Selection.Anchor != 0 || res.Selection.Head != 3 {
		t.Errorf("expected selection 0->3, got %v", res.Selection)
	}
}

func TestFindBackwardWrapsToRegionEnd(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(2),
		Query{Pattern: "foo", MatchCase: true, Backwards: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected wrap-around match")
	}
	if res.Selection.Anchor != 8 || res.Selection.Head != 11 {
		t.Errorf("expected selection 8->11, got %v", res.Selection)
	}
}

func TestFindRespectsRegion(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	// Region covers only "bar foo".
	region := buffer.NewRange(4, 11)
	res, err := FindReplace(buf, region, cursor.NewCursor(4),
		Query{Pattern: "foo", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected match inside region")
	}
	if res.Selection.Anchor != 8 || res.Selection.Head != 11 {
		t.Errorf("expected selection 8->11, got %v", res.Selection)
	}
}

func TestFindMatchOutsideRegionNotFound(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	// Region covers only "bar": both occurrences lie outside.
	region := buffer.NewRange(4, 7)
	res, err := FindReplace(buf, region, cursor.NewCursor(4),
		Query{Pattern: "foo", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Errorf("match outside region must be treated as not found, got %v", res.Selection)
	}
}

func TestFindMatchSpanningRegionEdgeNotFound(t *testing.T) {
	buf := buffer.NewBufferFromString("abcdef")

	// Match "cde" is [2:5), region ends at 4: the match sticks out.
	region := buffer.NewRange(1, 4)
	res, err := FindReplace(buf, region, cursor.NewCursor(1),
		Query{Pattern: "cde", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Error("match spanning outside the region must not be found")
	}
}

func TestFindCaseSensitivity(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(0),
		Query{Pattern: "FOO", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Error("case-sensitive search should not match different case")
	}

	res, err = FindReplace(buf, fullRegion(buf), cursor.NewCursor(0),
		Query{Pattern: "FOO"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Error("case-insensitive search should match different case")
	}
}

func TestFindNotFoundKeepsSelection(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	sel := cursor.NewSelection(0, 3)
	res, err := FindReplace(buf, fullRegion(buf), sel,
		Query{Pattern: "quux", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Fatal("expected no match")
	}
	if res.Selection != sel {
		t.Errorf("selection should be unchanged on failure, got %v", res.Selection)
	}
}

func TestReplaceCurrentSelection(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewSelection(0, 3),
		Query{Pattern: "foo", Replacement: "quux", Replace: true, MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Replaced {
		t.Fatal("expected in-place replacement")
	}
	if buf.Text() != "quux bar" {
		t.Errorf("expected 'quux bar', got %q", buf.Text())
	}
	// Selection surrounds the inserted text with the head at its start.
	if res.Selection.Anchor != 4 || res.Selection.Head != 0 {
		t.Errorf("expected selection 4->0, got %v", res.Selection)
	}
}

func TestReplaceOnlyWhenSelectionMatches(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar")

	// Selection is "bar"; the replace step becomes a plain find.
	res, err := FindReplace(buf, fullRegion(buf), cursor.NewSelection(4, 7),
		Query{Pattern: "foo", Replacement: "quux", Replace: true, MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Replaced {
		t.Error("non-matching selection must not be replaced")
	}
	if buf.Text() != "foo bar" {
		t.Errorf("document should be untouched, got %q", buf.Text())
	}
	if !res.Found || res.Selection.Start() != 0 || res.Selection.End() != 3 {
		t.Errorf("expected find result 0..3, got %v", res.Selection)
	}
}

func TestZeroWidthForwardAdvances(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\ncd")
	region := fullRegion(buf)

	sel := cursor.NewCursor(0)
	seen := make(map[buffer.ByteOffset]bool)

	// A zero-width pattern must advance every step and revisit positions
	// only after wrapping, so N+2 iterations stay bounded.
	for i := 0; i < int(buf.Len())+2; i++ {
		res, err := FindReplace(buf, region, sel, Query{Pattern: "x*", MatchCase: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Found {
			t.Fatal("zero-width pattern should always match")
		}
		if res.Selection.Head == sel.Head && i > 0 && !seen[res.Selection.Head] {
			t.Fatalf("search stalled at %d", res.Selection.Head)
		}
		seen[res.Selection.Head] = true
		sel = res.Selection
	}

	// Every position in the region was visited: the scan advanced by one
	// byte per step and wrapped at the region end.
	for off := buffer.ByteOffset(0); off <= buf.Len(); off++ {
		if !seen[off] {
			t.Errorf("position %d never visited", off)
		}
	}
}

func TestZeroWidthBackwardAdvances(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\ncd")
	region := fullRegion(buf)

	res, err := FindReplace(buf, region, cursor.NewCursor(3),
		Query{Pattern: "x*", MatchCase: true, Backwards: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("zero-width pattern should match")
	}
	if res.Selection.Head != 2 {
		t.Errorf("expected backward step to 2, got %v", res.Selection)
	}

	// At the region start the backward scan floors rather than wrapping.
	res, err = FindReplace(buf, region, cursor.NewCursor(0),
		Query{Pattern: "x*", MatchCase: true, Backwards: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found || res.Selection.Head != 0 {
		t.Errorf("expected floor at region start, got %v", res.Selection)
	}
}

func TestFindDefaultRegionIsWholeDocument(t *testing.T) {
	buf := buffer.NewBufferFromString("alpha\nbeta\ngamma")

	res, err := FindReplace(buf, fullRegion(buf), cursor.NewCursor(0),
		Query{Pattern: "gamma", MatchCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Error("pattern present in document must be found with default region")
	}
	if res.Selection.Start() != 11 || res.Selection.End() != 16 {
		t.Errorf("expected 11..16, got %v", res.Selection)
	}
}
