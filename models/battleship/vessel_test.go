package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

func sameCoordSet(a, b []Coordinates) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[Coordinates]bool, len(a))
	for _, c := range a {
		set[c] = true
	}
	for _, c := range b {
		if !set[c] {
			return false
		}
	}
	return true
}

func TestNewVesselLayout(t *testing.T) {
	origin := NewCoordinates(5, 5)
	tests := []struct {
		name        string
		orientation Direction
		want        []Coordinates
	}{
		{name: "north", orientation: North, want: []Coordinates{{5, 5}, {4, 5}, {3, 5}}},
		{name: "east", orientation: East, want: []Coordinates{{5, 5}, {5, 6}, {5, 7}}},
		{name: "south", orientation: South, want: []Coordinates{{5, 5}, {6, 5}, {7, 5}}},
		{name: "west", orientation: West, want: []Coordinates{{5, 5}, {5, 4}, {5, 3}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vessel := NewVessel(Cruiser, origin, test.orientation)
			got := vessel.OccupiedCoords()

			if len(got) != Cruiser.Length() {
				t.Fatalf("expected length: %d\tgot: %d", Cruiser.Length(), len(got))
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Fatalf("cell %d expected: %v\tgot: %v", i, test.want[i], got[i])
				}
			}
		})
	}
}

func TestVesselSunkIffAllCellsHit(t *testing.T) {
	for _, class := range FleetClasses {
		t.Run(class.String(), func(t *testing.T) {
			vessel := NewVessel(class, NewCoordinates(0, 0), East)

			for _, c := range vessel.OccupiedCoords() {
				if vessel.IsSunk() {
					t.Fatal("vessel sunk before every cell was hit")
				}
				vessel.RecordHit(c)
				if vessel.IsSunk() != sameCoordSet(vessel.HitCoords(), vessel.OccupiedCoords()) {
					t.Fatal("IsSunk disagrees with the hit set")
				}
			}

			if !vessel.IsSunk() {
				t.Fatal("vessel not sunk after every cell was hit")
			}
		})
	}
}

func TestVesselRecordHitIgnoresForeignAndRepeatedCells(t *testing.T) {
	vessel := NewVessel(Destroyer, NewCoordinates(0, 0), East)

	vessel.RecordHit(NewCoordinates(5, 5))
	vessel.RecordHit(NewCoordinates(0, 0))
	vessel.RecordHit(NewCoordinates(0, 0))

	if got := len(vessel.HitCoords()); got != 1 {
		t.Fatalf("expected 1 hit, got %d", got)
	}
	if vessel.IsSunk() {
		t.Fatal("destroyer sunk after a single hit")
	}
}

func TestValidatePlacement(t *testing.T) {
	grid := NewGrid()
	fleet := NewFleet()
	if err := fleet.Place(grid, Destroyer, NewCoordinates(5, 5), East); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		class       VesselClass
		origin      Coordinates
		orientation Direction
		wantErr     bool
	}{
		{name: "last cell on the edge", class: Destroyer, origin: NewCoordinates(0, 8), orientation: East},
		{name: "last cell past the edge", class: Destroyer, origin: NewCoordinates(0, 9), orientation: East, wantErr: true},
		{name: "north from top row", class: Carrier, origin: NewCoordinates(3, 0), orientation: North, wantErr: true},
		{name: "north exactly fits", class: Carrier, origin: NewCoordinates(4, 0), orientation: North},
		{name: "west exactly fits", class: Battleship, origin: NewCoordinates(9, 3), orientation: West},
		{name: "origin outside", class: Destroyer, origin: NewCoordinates(-1, 0), orientation: South, wantErr: true},
		{name: "overlap on origin", class: Submarine, origin: NewCoordinates(5, 6), orientation: South, wantErr: true},
		{name: "overlap on intermediate cell", class: Submarine, origin: NewCoordinates(4, 5), orientation: South, wantErr: true},
		{name: "overlap on last cell", class: Submarine, origin: NewCoordinates(7, 6), orientation: North, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidatePlacement(grid, test.class, test.origin, test.orientation)
			if test.wantErr && !errors.Is(err, cerr.ErrInvalidPlacement) {
				t.Fatalf("expected invalid placement, got: %v", err)
			}
			if !test.wantErr && err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestFleetPlaceMarksGrid(t *testing.T) {
	grid := NewGrid()
	fleet := NewFleet()

	if err := fleet.Place(grid, Battleship, NewCoordinates(2, 2), South); err != nil {
		t.Fatal(err)
	}

	if got := len(grid.Cells(CellShip)); got != Battleship.Length() {
		t.Fatalf("expected %d ship cells, got %d", Battleship.Length(), got)
	}
	if idx, ok := fleet.VesselAt(NewCoordinates(5, 2)); !ok || fleet.Vessel(idx).Class() != Battleship {
		t.Fatal("battleship not found at its last cell")
	}
	if fleet.RemainingCells() != Battleship.Length() {
		t.Fatalf("expected %d remaining cells, got %d", Battleship.Length(), fleet.RemainingCells())
	}

	// A failed placement leaves the grid untouched
	if err := fleet.Place(grid, Carrier, NewCoordinates(4, 0), East); err == nil {
		t.Fatal("expected overlap error")
	}
	if got := len(grid.Cells(CellShip)); got != Battleship.Length() {
		t.Fatalf("failed placement changed the grid: %d ship cells", got)
	}
	if fleet.Len() != 1 {
		t.Fatalf("expected 1 vessel, got %d", fleet.Len())
	}
}
