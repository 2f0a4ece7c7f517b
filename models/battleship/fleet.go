package battleship

import (
	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

// Fleet owns the vessels of one player by value. Vessels are
// retired when sunk but never removed.
type Fleet struct {
	vessels []Vessel
}

func NewFleet() Fleet {
	return Fleet{vessels: make([]Vessel, 0, MaxShips)}
}

// ValidatePlacement checks that all cells of a vessel of the given
// length starting at origin are in bounds and empty on the grid.
func ValidatePlacement(grid *Grid, class VesselClass, origin Coordinates, orientation Direction) error {
	c := origin
	for i := 0; i < class.Length(); i++ {
		if !grid.IsInBounds(c) {
			return cerr.ErrPlacementOutOfBound(class.String(), origin.Row, origin.Col, orientation.String())
		}
		if !grid.IsOpen(c) {
			return cerr.ErrPlacementOverlap(class.String(), c.Row, c.Col)
		}
		c = c.Next(orientation)
	}
	return nil
}

// Place validates and finalizes a vessel, marking its cells on the
// defence grid.
func (f *Fleet) Place(grid *Grid, class VesselClass, origin Coordinates, orientation Direction) error {
	if err := ValidatePlacement(grid, class, origin, orientation); err != nil {
		return err
	}

	vessel := NewVessel(class, origin, orientation)
	for _, c := range vessel.coords {
		if err := grid.Set(c, CellShip); err != nil {
			return err
		}
	}

	f.vessels = append(f.vessels, vessel)
	return nil
}

func (f *Fleet) Len() int {
	return len(f.vessels)
}

func (f *Fleet) Vessel(idx int) *Vessel {
	return &f.vessels[idx]
}

// VesselAt returns the index of the vessel occupying c.
func (f *Fleet) VesselAt(c Coordinates) (int, bool) {
	for i := range f.vessels {
		if f.vessels[i].Occupies(c) {
			return i, true
		}
	}
	return -1, false
}

func (f *Fleet) SunkCount() int {
	sunk := 0
	for i := range f.vessels {
		if f.vessels[i].IsSunk() {
			sunk++
		}
	}
	return sunk
}

// RemainingCells counts occupied cells that have not been hit yet.
func (f *Fleet) RemainingCells() int {
	remaining := 0
	for i := range f.vessels {
		remaining += f.vessels[i].Length() - len(f.vessels[i].hitCoords)
	}
	return remaining
}

func (f *Fleet) IsDestroyed() bool {
	return len(f.vessels) == MaxShips && f.SunkCount() == MaxShips
}
