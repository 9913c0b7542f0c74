package source

import "testing"

func TestDocumentLines(t *testing.T) {
	doc := NewDocument("one\r\ntwo\n\nfour")
	if doc.LineCount() != 4 {
		t.Fatalf("expected 4 lines, got %d", doc.LineCount())
	}
	want := []string{"one", "two", "", "four"}
	for i, line := range want {
		if got := doc.Line(i); got != line {
			t.Errorf("Line(%d) = %q, want %q", i, got, line)
		}
	}
	if doc.Line(9) != "" {
		t.Error("expected empty string for line past the end")
	}
}

func TestDocumentOffsetRoundTripUTF16(t *testing.T) {
	text := "a😀b\nпривет"
	doc := NewDocument(text)

	// 😀 occupies two UTF-16 units, so "b" sits at character 3.
	off := doc.OffsetAt(Position{Line: 0, Character: 3})
	if text[off:off+1] != "b" {
		t.Fatalf("expected offset of 'b', got %d", off)
	}
	if pos := doc.PositionAt(off); pos != (Position{Line: 0, Character: 3}) {
		t.Fatalf("PositionAt(%d) = %v", off, pos)
	}

	pos := doc.PositionAt(len(text))
	if pos != (Position{Line: 1, Character: 6}) {
		t.Fatalf("expected end position 1:6, got %v", pos)
	}
	if doc.End() != pos {
		t.Fatalf("End() = %v, want %v", doc.End(), pos)
	}
}

func TestDocumentSlice(t *testing.T) {
	doc := NewDocument("<div>\n  this.a.b\n</div>")
	got := doc.Slice(Range{Start: Position{1, 2}, End: Position{1, 10}})
	if got != "this.a.b" {
		t.Fatalf("Slice() = %q", got)
	}
	if doc.Slice(Range{Start: Position{1, 5}, End: Position{1, 2}}) != "" {
		t.Fatal("expected empty slice for inverted range")
	}
	if !doc.Contains(Range{Start: Position{0, 0}, End: Position{2, 6}}) {
		t.Fatal("expected range to be contained")
	}
	if doc.Contains(Range{Start: Position{0, 0}, End: Position{3, 0}}) {
		t.Fatal("expected range past the last line to be rejected")
	}
}

func TestRangeOverlaps(t *testing.T) {
	a := Range{Start: Position{0, 0}, End: Position{0, 5}}
	b := Range{Start: Position{0, 4}, End: Position{0, 8}}
	c := Range{Start: Position{0, 5}, End: Position{0, 5}}
	if !a.Overlaps(b) {
		t.Fatal("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Fatal("insertion at the end must not overlap")
	}
	if !b.Overlaps(c) {
		t.Fatal("insertion inside b must overlap")
	}
}
