package source

// Loc is a position reported by a region parser. Line is 1-based, the way
// parsers count lines; Column is 0-based and already aligned with the
// composite document because region content keeps its leading columns.
type Loc struct {
	Line   int
	Column int
}

// LocalRange is a range in region-local coordinates.
// It must go through ToCompositeRange before it can appear in a diagnostic.
type LocalRange struct {
	Start Loc
	End   Loc
}

// Cover returns the smallest local range containing both r and other.
func (r LocalRange) Cover(other LocalRange) LocalRange {
	if locBefore(other.Start, r.Start) {
		r.Start = other.Start
	}
	if locBefore(r.End, other.End) {
		r.End = other.End
	}
	return r
}

func locBefore(a, b Loc) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// ToComposite maps a region-local location to composite coordinates:
// line' = line - 1 + startLine, character unchanged.
// Lines below 1 are treated as the region's first line.
func ToComposite(loc Loc, startLine int) Position {
	line := loc.Line
	if line < 1 {
		line = 1
	}
	col := loc.Column
	if col < 0 {
		col = 0
	}
	return Position{Line: line - 1 + startLine, Character: col}
}

// ToCompositeRange maps both ends of a region-local range.
func ToCompositeRange(r LocalRange, startLine int) Range {
	return Range{
		Start: ToComposite(r.Start, startLine),
		End:   ToComposite(r.End, startLine),
	}
}
