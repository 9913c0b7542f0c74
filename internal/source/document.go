package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Document indexes a composite document's text so ranges in editor
// coordinates can be turned into byte offsets and back.
type Document struct {
	text       string
	lineStarts []int
}

// NewDocument builds a line index over text.
func NewDocument(text string) *Document {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, lineStarts: starts}
}

// Text returns the indexed text.
func (d *Document) Text() string {
	return d.text
}

// LineCount returns the number of lines; a trailing newline opens an empty last line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// Line returns the text of line i without its terminator.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lineStarts) {
		return ""
	}
	start := d.lineStarts[i]
	end := len(d.text)
	if i+1 < len(d.lineStarts) {
		end = d.lineStarts[i+1] - 1
	}
	if end > start && d.text[end-1] == '\r' {
		end--
	}
	return d.text[start:end]
}

// LineStart returns the byte offset of the first byte of line i.
func (d *Document) LineStart(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(d.lineStarts) {
		return len(d.text)
	}
	return d.lineStarts[i]
}

// End returns the position just past the last character.
func (d *Document) End() Position {
	return d.PositionAt(len(d.text))
}

// OffsetAt converts a position into a byte offset, counting characters in
// UTF-16 code units. Out-of-range positions are clamped.
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	if pos.Line >= len(d.lineStarts) {
		return len(d.text)
	}
	i := d.lineStarts[pos.Line]
	units := 0
	for i < len(d.text) {
		if d.text[i] == '\n' {
			break
		}
		r, size := utf8.DecodeRuneInString(d.text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
		if units == pos.Character {
			break
		}
	}
	return i
}

// PositionAt converts a byte offset into a position.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	units := 0
	for off := d.lineStarts[line]; off < offset; {
		r, size := utf8.DecodeRuneInString(d.text[off:offset])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += size
	}
	return Position{Line: line, Character: units}
}

// Slice returns the text covered by r.
func (d *Document) Slice(r Range) string {
	start := d.OffsetAt(r.Start)
	end := d.OffsetAt(r.End)
	if end < start {
		return ""
	}
	return d.text[start:end]
}

// Contains reports whether r lies within the document's lines.
func (d *Document) Contains(r Range) bool {
	if r.Start.Line < 0 || r.End.Line < 0 {
		return false
	}
	return r.Start.Line < d.LineCount() && r.End.Line < d.LineCount()
}
