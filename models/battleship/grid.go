package battleship

import (
	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

type CellState uint8

const (
	CellEmpty CellState = iota
	CellMiss
	CellHit
	CellShip
	CellSunk
)

func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellMiss:
		return "Miss"
	case CellHit:
		return "Hit"
	case CellShip:
		return "ShipPresent"
	case CellSunk:
		return "Sunk"
	default:
		return "Unknown"
	}
}

// rank orders the states so that a cell can only move forward.
// Miss and ShipPresent share a rank since neither follows the other.
func (s CellState) rank() int {
	switch s {
	case CellEmpty:
		return 0
	case CellMiss, CellShip:
		return 1
	case CellHit:
		return 2
	default:
		return 3
	}
}

// ShotBoard is the read-only view the targeting engine and the
// match use to decide whether a coordinate may still be called.
type ShotBoard interface {
	IsInBounds(c Coordinates) bool
	IsOpen(c Coordinates) bool
	Get(c Coordinates) CellState
}

type Grid struct {
	cells [GridSize][GridSize]CellState
}

var _ ShotBoard = (*Grid)(nil)

// Creates a new grid with every cell Empty
func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) IsInBounds(c Coordinates) bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

func (g *Grid) IsOpen(c Coordinates) bool {
	return g.IsInBounds(c) && g.cells[c.Row][c.Col] == CellEmpty
}

// Get returns CellEmpty for out of bound coordinates; callers
// should check IsInBounds first.
func (g *Grid) Get(c Coordinates) CellState {
	if !g.IsInBounds(c) {
		return CellEmpty
	}
	return g.cells[c.Row][c.Col]
}

// Set writes a single cell. Transitions are monotonic:
// Empty -> {Miss, ShipPresent, Hit} -> Hit -> Sunk.
func (g *Grid) Set(c Coordinates, state CellState) error {
	if !g.IsInBounds(c) {
		return cerr.ErrCoordinateOutOfBound(c.Row, c.Col)
	}

	current := g.cells[c.Row][c.Col]
	if current == state {
		return nil
	}
	if state.rank() <= current.rank() || current == CellMiss {
		return cerr.ErrCellTransition(c.Row, c.Col, current.String(), state.String())
	}

	g.cells[c.Row][c.Col] = state
	return nil
}

// Cells returns every coordinate currently in the given state,
// scanning row by row.
func (g *Grid) Cells(state CellState) []Coordinates {
	coords := make([]Coordinates, 0)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if g.cells[row][col] == state {
				coords = append(coords, NewCoordinates(row, col))
			}
		}
	}
	return coords
}

// Snapshot copies the cells so the opponent never holds a reference.
func (g *Grid) Snapshot() [GridSize][GridSize]CellState {
	return g.cells
}

// turnView overlays the calls made during the current turn on top of
// the attack grid. A pending cell is not open, so neither the engine
// nor a human can call it twice in one salvo.
type turnView struct {
	grid    *Grid
	pending map[Coordinates]struct{}
}

var _ ShotBoard = (*turnView)(nil)

func newTurnView(grid *Grid) *turnView {
	return &turnView{
		grid:    grid,
		pending: make(map[Coordinates]struct{}, MaxShips),
	}
}

func (v *turnView) IsInBounds(c Coordinates) bool {
	return v.grid.IsInBounds(c)
}

func (v *turnView) IsOpen(c Coordinates) bool {
	if _, prs := v.pending[c]; prs {
		return false
	}
	return v.grid.IsOpen(c)
}

func (v *turnView) Get(c Coordinates) CellState {
	return v.grid.Get(c)
}

func (v *turnView) isPending(c Coordinates) bool {
	_, prs := v.pending[c]
	return prs
}

func (v *turnView) mark(c Coordinates) {
	v.pending[c] = struct{}{}
}
