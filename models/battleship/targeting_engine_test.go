package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

const testSeed int64 = 42

func mustSet(t *testing.T, grid *Grid, c Coordinates, state CellState) {
	t.Helper()
	if err := grid.Set(c, state); err != nil {
		t.Fatal(err)
	}
}

func directionBetween(from, to Coordinates) Direction {
	for _, d := range Directions {
		if from.Next(d) == to {
			return d
		}
	}
	panic("coordinates are not neighbours")
}

func TestEasyEngineOnlyPicksOpenCells(t *testing.T) {
	grid := NewGrid()
	last := NewCoordinates(4, 4)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if c := NewCoordinates(row, col); c != last {
				mustSet(t, grid, c, CellMiss)
			}
		}
	}

	engine := NewTargetingEngine(false, testSeed)
	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if c != last {
		t.Fatalf("expected the only open cell %s, got %s", last, c)
	}

	mustSet(t, grid, last, CellMiss)
	if _, err := engine.NextCoordinate(grid); !errors.Is(err, cerr.ErrNoOpenCoordinates) {
		t.Fatalf("expected no open coordinates error, got: %v", err)
	}
}

func TestEngineDeterministicUnderSeed(t *testing.T) {
	for _, hardmode := range []bool{false, true} {
		gridA, gridB := NewGrid(), NewGrid()
		mustSet(t, gridA, NewCoordinates(3, 3), CellHit)
		mustSet(t, gridB, NewCoordinates(3, 3), CellHit)

		engineA := NewTargetingEngine(hardmode, testSeed)
		engineB := NewTargetingEngine(hardmode, testSeed)

		for i := 0; i < 30; i++ {
			a, errA := engineA.NextCoordinate(gridA)
			b, errB := engineB.NextCoordinate(gridB)
			if errA != nil || errB != nil {
				t.Fatalf("unexpected errors: %v, %v", errA, errB)
			}
			if a != b {
				t.Fatalf("hardmode %v call %d diverged: %s vs %s", hardmode, i, a, b)
			}

			mustSet(t, gridA, a, CellMiss)
			mustSet(t, gridB, b, CellMiss)
			engineA.RecordShotResult(a, false, false)
			engineB.RecordShotResult(b, false, false)
		}
	}
}

func TestHardEngineProbesNeighbourOfCornerHit(t *testing.T) {
	grid := NewGrid()
	anchor := NewCoordinates(0, 0)
	mustSet(t, grid, anchor, CellHit)

	engine := NewTargetingEngine(true, testSeed)
	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}

	if c != NewCoordinates(0, 1) && c != NewCoordinates(1, 0) {
		t.Fatalf("expected an in-bounds neighbour of %s, got %s", anchor, c)
	}

	searches := engine.Searches()
	if len(searches) != 1 {
		t.Fatalf("expected one search, got %d", len(searches))
	}
	if searches[0].StartPos() != anchor {
		t.Fatalf("expected anchor %s, got %s", anchor, searches[0].StartPos())
	}
	for _, d := range searches[0].CandidateDirections() {
		if !grid.IsOpen(anchor.Next(d)) {
			t.Fatalf("candidate direction %s points off the board", d)
		}
	}
	visited := searches[0].Visited()
	if len(visited) != 1 || visited[0] != c {
		t.Fatalf("expected visited [%s], got %v", c, visited)
	}
}

func TestHardEngineContinuesAfterHit(t *testing.T) {
	grid := NewGrid()
	anchor := NewCoordinates(5, 5)
	mustSet(t, grid, anchor, CellHit)

	engine := NewTargetingEngine(true, testSeed)
	first, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	dir := directionBetween(anchor, first)

	mustSet(t, grid, first, CellHit)
	engine.RecordShotResult(first, true, false)

	second, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if second != first.Next(dir) {
		t.Fatalf("expected the line to continue to %s, got %s", first.Next(dir), second)
	}
}

func TestHardEngineReversesAfterMiss(t *testing.T) {
	tests := []struct {
		name      string
		hitsFirst int
	}{
		{name: "miss on first probe", hitsFirst: 0},
		{name: "miss after one hit", hitsFirst: 1},
		{name: "miss after two hits", hitsFirst: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := NewGrid()
			anchor := NewCoordinates(5, 5)
			mustSet(t, grid, anchor, CellHit)

			engine := NewTargetingEngine(true, testSeed)
			c, err := engine.NextCoordinate(grid)
			if err != nil {
				t.Fatal(err)
			}
			dir := directionBetween(anchor, c)

			for i := 0; i < test.hitsFirst; i++ {
				mustSet(t, grid, c, CellHit)
				engine.RecordShotResult(c, true, false)
				if c, err = engine.NextCoordinate(grid); err != nil {
					t.Fatal(err)
				}
			}

			mustSet(t, grid, c, CellMiss)
			engine.RecordShotResult(c, false, false)

			next, err := engine.NextCoordinate(grid)
			if err != nil {
				t.Fatal(err)
			}
			if want := anchor.Next(dir.Opposite()); next != want {
				t.Fatalf("expected reversal to %s, got %s", want, next)
			}
		})
	}
}

func TestHardEngineExhaustedSearchFallsBackToRandom(t *testing.T) {
	grid := NewGrid()
	anchor := NewCoordinates(0, 0)
	mustSet(t, grid, anchor, CellHit)
	mustSet(t, grid, NewCoordinates(1, 0), CellMiss)

	engine := NewTargetingEngine(true, testSeed)
	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if c != NewCoordinates(0, 1) {
		t.Fatalf("expected the only open neighbour A2, got %s", c)
	}

	mustSet(t, grid, c, CellMiss)
	engine.RecordShotResult(c, false, false)

	next, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if !grid.IsOpen(next) {
		t.Fatalf("random fallback returned a resolved cell %s", next)
	}
	if len(engine.Searches()) != 0 {
		t.Fatalf("expected searches to be cleared, got %d", len(engine.Searches()))
	}
}

func TestHardEngineExhaustedSearchClearsEverySearch(t *testing.T) {
	grid := NewGrid()
	cornered := NewCoordinates(0, 0)
	mustSet(t, grid, cornered, CellHit)
	mustSet(t, grid, NewCoordinates(0, 1), CellMiss)
	mustSet(t, grid, NewCoordinates(1, 0), CellMiss)
	mustSet(t, grid, NewCoordinates(7, 7), CellHit)

	exhausted := newTargetingSearch(cornered, []Direction{East}, East)
	exhausted.priority = 0
	alive := newTargetingSearch(NewCoordinates(7, 7), []Direction{West, North}, West)
	alive.priority = 3

	engine := NewTargetingEngine(true, testSeed)
	engine.searches = []TargetingSearch{exhausted, alive}

	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if len(engine.Searches()) != 0 {
		t.Fatalf("expected every search to be cleared, got %d", len(engine.Searches()))
	}
	if !grid.IsOpen(c) {
		t.Fatalf("random fallback returned a resolved cell %s", c)
	}
}

func TestHardEngineSpawnsSearchPerHitCell(t *testing.T) {
	grid := NewGrid()
	first := NewCoordinates(2, 2)
	second := NewCoordinates(6, 6)
	mustSet(t, grid, first, CellHit)
	mustSet(t, grid, second, CellHit)

	engine := NewTargetingEngine(true, testSeed)
	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}

	searches := engine.Searches()
	if len(searches) != 2 {
		t.Fatalf("expected 2 searches, got %d", len(searches))
	}
	if searches[0].StartPos() != first || searches[1].StartPos() != second {
		t.Fatalf("expected anchors %s and %s, got %s and %s", first, second, searches[0].StartPos(), searches[1].StartPos())
	}

	if absInt(c.Row-first.Row)+absInt(c.Col-first.Col) != 1 {
		t.Fatalf("expected a neighbour of %s, got %s", first, c)
	}
	if visited := searches[0].Visited(); len(visited) != 1 || visited[0] != c {
		t.Fatalf("expected the first search to fire %s, visited %v", c, visited)
	}
	if len(searches[1].Visited()) != 0 {
		t.Fatalf("the second search fired: %v", searches[1].Visited())
	}
	if got := searches[1].Priority(); got != unresolvedPriority-1 {
		t.Fatalf("expected the idle search to age to %d, got %d", unresolvedPriority-1, got)
	}
}

func TestHardEngineSkipsCellsAlreadyHit(t *testing.T) {
	grid := NewGrid()
	anchor := NewCoordinates(5, 5)
	mustSet(t, grid, anchor, CellHit)
	mustSet(t, grid, NewCoordinates(5, 6), CellHit)

	engine := NewTargetingEngine(true, testSeed)
	engine.searches = []TargetingSearch{newTargetingSearch(anchor, []Direction{East, West}, East)}

	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if c != NewCoordinates(5, 7) {
		t.Fatalf("expected F8, got %s", c)
	}
}

func TestHardEngineLeavesPendingCells(t *testing.T) {
	grid := NewGrid()
	anchor := NewCoordinates(5, 5)
	mustSet(t, grid, anchor, CellHit)

	view := newTurnView(grid)
	view.mark(NewCoordinates(5, 6))

	engine := NewTargetingEngine(true, testSeed)
	engine.searches = []TargetingSearch{newTargetingSearch(anchor, []Direction{East, West}, East)}

	c, err := engine.NextCoordinate(view)
	if err != nil {
		t.Fatal(err)
	}
	if c != NewCoordinates(5, 4) {
		t.Fatalf("expected the opposite side F5, got %s", c)
	}
}

func TestHardEngineSelectsSmallestAbsolutePriority(t *testing.T) {
	grid := NewGrid()
	stale := newTargetingSearch(NewCoordinates(1, 1), []Direction{East}, East)
	stale.priority = 3
	fresh := newTargetingSearch(NewCoordinates(7, 7), []Direction{West}, West)

	engine := NewTargetingEngine(true, testSeed)
	engine.searches = []TargetingSearch{stale, fresh}

	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}
	if c != NewCoordinates(7, 6) {
		t.Fatalf("expected the fresher search to fire at H7, got %s", c)
	}

	searches := engine.Searches()
	if searches[0].Priority() != 2 {
		t.Fatalf("expected the other search to age to 2, got %d", searches[0].Priority())
	}
	if searches[1].Priority() != unresolvedPriority {
		t.Fatalf("expected the chosen search to keep its priority, got %d", searches[1].Priority())
	}
}

func TestHardEngineAssignsRemainingLength(t *testing.T) {
	grid := NewGrid()
	anchor := NewCoordinates(5, 5)
	mustSet(t, grid, anchor, CellHit)

	engine := NewTargetingEngine(true, testSeed)
	engine.searches = []TargetingSearch{newTargetingSearch(anchor, []Direction{East}, East)}
	engine.RecordVesselHit(VesselSnapshot{Name: "Battleship", Length: 4, Hits: []Coordinates{anchor}})
	engine.RecordVesselHit(VesselSnapshot{Name: "Battleship", Length: 4, Hits: []Coordinates{anchor, NewCoordinates(5, 4)}})

	if _, err := engine.NextCoordinate(grid); err != nil {
		t.Fatal(err)
	}

	search := engine.Searches()[0]
	if search.RemainingLength() != 2 {
		t.Fatalf("expected remaining length 2, got %d", search.RemainingLength())
	}

	engine.ResetPriorities()
	if got := engine.Searches()[0].Priority(); got != 2 {
		t.Fatalf("expected priority reset to 2, got %d", got)
	}
}

func TestRecordShotResultOnlyTouchesOwningSearch(t *testing.T) {
	grid := NewGrid()
	mustSet(t, grid, NewCoordinates(5, 5), CellHit)

	engine := NewTargetingEngine(true, testSeed)
	c, err := engine.NextCoordinate(grid)
	if err != nil {
		t.Fatal(err)
	}

	engine.RecordShotResult(NewCoordinates(0, 0), false, false)
	if !engine.Searches()[0].DirectionActive() {
		t.Fatal("a call outside the search changed its direction state")
	}

	engine.RecordShotResult(c, false, false)
	if engine.Searches()[0].DirectionActive() {
		t.Fatal("a miss on the probed cell did not close the direction")
	}

	engine.RecordShotResult(c, true, true)
	if len(engine.Searches()) != 0 {
		t.Fatal("a sunk vessel did not clear the searches")
	}
}

func TestRandomPlacementInBounds(t *testing.T) {
	engine := NewTargetingEngine(false, testSeed)
	grid := NewGrid()

	for i := 0; i < 200; i++ {
		origin, orientation := engine.RandomPlacement()
		if !grid.IsInBounds(origin) {
			t.Fatalf("origin %v out of bounds", origin)
		}
		if orientation > West {
			t.Fatalf("unknown orientation %d", orientation)
		}
	}
}
