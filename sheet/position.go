package sheet

import (
	"fmt"
	"strings"
)

// Position is a 1-indexed cell position.
type Position struct {
	Row int
	Col int
}

// A1 returns the position in A1 notation.
func (p Position) A1() string {
	return ColumnLetters(p.Col) + fmt.Sprint(p.Row)
}

// Offset returns the position moved by the given deltas.
func (p Position) Offset(rows, cols int) Position {
	return Position{Row: p.Row + rows, Col: p.Col + cols}
}

// ParseA1 parses a position from A1 notation (e.g. "B5").
func ParseA1(ref string) (Position, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return Position{}, NewError(KindValidation, "cell reference is empty", nil)
	}

	col, row := 0, 0
	i := 0
	for ; i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z'; i++ {
		col = col*26 + int(ref[i]-'A') + 1
	}
	for ; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return Position{}, NewError(KindValidation, fmt.Sprintf("invalid cell reference %q", ref), nil)
		}
		row = row*10 + int(ref[i]-'0')
	}
	if col == 0 || row == 0 {
		return Position{}, NewError(KindValidation, fmt.Sprintf("invalid cell reference %q", ref), nil)
	}
	return Position{Row: row, Col: col}, nil
}

// ColumnLetters converts a 1-indexed column number to letters ("A", "AB").
func ColumnLetters(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
