package console

import (
	"strconv"
	"strings"
	"unicode"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

// ParseCoordinates reads the "A1" notation: a row letter followed by a
// 1-based column number. Bounds are left to the match.
func ParseCoordinates(input string) (mb.Coordinates, error) {
	input = strings.TrimSpace(input)
	if len(input) < 2 {
		return mb.Coordinates{}, cerr.ErrCoordinateUnreadable(input)
	}

	letter := unicode.ToUpper(rune(input[0]))
	if letter < 'A' || letter >= 'A'+mb.GridSize {
		return mb.Coordinates{}, cerr.ErrCoordinateUnreadable(input)
	}

	col, err := strconv.Atoi(input[1:])
	if err != nil || col < 1 {
		return mb.Coordinates{}, cerr.ErrCoordinateUnreadable(input)
	}

	return mb.NewCoordinates(int(letter-'A'), col-1), nil
}
