package source

import "fmt"

// Position is a zero-based line and a zero-based UTF-16 character offset,
// the coordinate system editors speak.
type Position struct {
	Line      int `json:"line" msgpack:"l"`
	Character int `json:"character" msgpack:"c"`
}

// Range is a half-open span of composite-document positions.
type Range struct {
	Start Position `json:"start" msgpack:"s"`
	End   Position `json:"end" msgpack:"e"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Character < q.Character
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Empty reports whether the range covers no characters.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Contains reports whether p lies inside [Start, End).
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// Overlaps reports whether the two ranges share at least one character.
// Two empty ranges never overlap.
func (r Range) Overlaps(other Range) bool {
	if r.Empty() && other.Empty() {
		return false
	}
	if r.Empty() {
		return other.Contains(r.Start)
	}
	if other.Empty() {
		return r.Contains(other.Start)
	}
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
