package errors

// Position is a 1-based line/column location in a source buffer, plus the
// byte span of the offending token when known.
type Position struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int
}

// PositionAt computes the line/column of a byte offset. Columns count bytes
// from the last line terminator, which is what the display layer needs for
// caret markers.
func PositionAt(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	line, col := 1, 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return Position{Line: line, Column: col, StartPos: offset, EndPos: offset}
}
