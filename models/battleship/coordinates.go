package battleship

import (
	"fmt"
	"strings"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

const (
	GridSize = 10

	// Row labels start from this letter (A-J)
	startingLetter = 'A'
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// Next returns the neighbouring coordinate in direction d.
// The result may be out of bounds.
func (c Coordinates) Next(d Direction) Coordinates {
	switch d {
	case North:
		return Coordinates{Row: c.Row - 1, Col: c.Col}
	case East:
		return Coordinates{Row: c.Row, Col: c.Col + 1}
	case South:
		return Coordinates{Row: c.Row + 1, Col: c.Col}
	default:
		return Coordinates{Row: c.Row, Col: c.Col - 1}
	}
}

// String renders the coordinate the way players call it, e.g. A1.
func (c Coordinates) String() string {
	return fmt.Sprintf("%c%d", rune(startingLetter+c.Row), c.Col+1)
}

type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the order neighbours are checked.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) IsVertical() bool {
	return d == North || d == South
}

func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}

func ParseDirection(value string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "NORTH", "N":
		return North, nil
	case "EAST", "E":
		return East, nil
	case "SOUTH", "S":
		return South, nil
	case "WEST", "W":
		return West, nil
	}
	return North, cerr.ErrDirectionUnknown(value)
}
