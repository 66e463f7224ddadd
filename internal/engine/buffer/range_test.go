package buffer

import "testing"

func TestRangeBasics(t *testing.T) {
	r := NewRange(2, 5)

	if r.Len() != 3 {
		t.Errorf("expected length 3, got %d", r.Len())
	}
	if r.IsEmpty() {
		t.Error("range should not be empty")
	}
	if !r.IsValid() {
		t.Error("range should be valid")
	}
	if r.String() != "[2:5)" {
		t.Errorf("unexpected string %q", r.String())
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(2, 5)

	tests := []struct {
		offset ByteOffset
		want   bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{5, false}, // end is exclusive
	}

	for _, tt := range tests {
		if got := r.Contains(tt.offset); got != tt.want {
			t.Errorf("Contains(%d): expected %v, got %v", tt.offset, tt.want, got)
		}
	}
}

func TestRangeContainsRange(t *testing.T) {
	r := NewRange(2, 8)

	if !r.ContainsRange(NewRange(2, 8)) {
		t.Error("range should contain itself")
	}
	if !r.ContainsRange(NewRange(3, 5)) {
		t.Error("range should contain inner range")
	}
	if r.ContainsRange(NewRange(1, 5)) {
		t.Error("range should not contain range starting before it")
	}
	if r.ContainsRange(NewRange(5, 9)) {
		t.Error("range should not contain range ending after it")
	}
}

func TestRangeNormalize(t *testing.T) {
	r := Range{Start: 7, End: 3}.Normalize()

	if r.Start != 3 || r.End != 7 {
		t.Errorf("expected [3:7), got %v", r)
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Start: -2, End: 15}.Clamp(10)

	if r.Start != 0 || r.End != 10 {
		t.Errorf("expected [0:10), got %v", r)
	}
}

func TestRangeOverlapsAndIntersect(t *testing.T) {
	a := NewRange(2, 6)
	b := NewRange(4, 9)

	if !a.Overlaps(b) {
		t.Error("ranges should overlap")
	}

	got := a.Intersect(b)
	if got.Start != 4 || got.End != 6 {
		t.Errorf("expected [4:6), got %v", got)
	}

	c := NewRange(6, 8)
	if a.Overlaps(c) {
		t.Error("touching ranges should not overlap")
	}
}
