package battleship

import (
	"math/rand"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

// TargetingEngine picks the computer's coordinates. In hardmode it
// runs directional searches from confirmed hits; otherwise every
// call is a uniformly random open cell.
type TargetingEngine struct {
	hardmode bool
	rng      *rand.Rand
	searches []TargetingSearch

	// Vessels hit since the priorities were last assigned
	hitHistory []VesselSnapshot
}

func NewTargetingEngine(hardmode bool, seed int64) *TargetingEngine {
	return &TargetingEngine{
		hardmode:   hardmode,
		rng:        rand.New(rand.NewSource(seed)),
		searches:   make([]TargetingSearch, 0),
		hitHistory: make([]VesselSnapshot, 0, MaxShips),
	}
}

func (e *TargetingEngine) IsHardmode() bool {
	return e.hardmode
}

// Searches returns a copy of the active searches.
func (e *TargetingEngine) Searches() []TargetingSearch {
	searches := make([]TargetingSearch, len(e.searches))
	copy(searches, e.searches)
	return searches
}

// NextCoordinate decides the next call against shots. The returned
// coordinate is always open on shots.
func (e *TargetingEngine) NextCoordinate(shots ShotBoard) (Coordinates, error) {
	if !e.hardmode {
		return e.randomOpen(shots)
	}

	if len(e.searches) == 0 {
		if c, ok := e.spawnSearches(shots); ok {
			return c, nil
		}
		return e.randomOpen(shots)
	}

	e.assignVesselsToSearches()
	idx := e.selectSearch()

	c, ok := e.advance(&e.searches[idx], shots)
	if !ok {
		log.Debug("search exhausted, clearing all searches", "anchor", e.searches[idx].startPos, "active", len(e.searches))
		e.ClearSearches()
		return e.randomOpen(shots)
	}

	e.agePriorities(idx)
	return c, nil
}

// RecordShotResult feeds a resolved call back into the search that
// probed it. Sinking any vessel clears every active search.
func (e *TargetingEngine) RecordShotResult(c Coordinates, wasHit, vesselSunk bool) {
	for i := range e.searches {
		if e.searches[i].hasVisited(c) {
			e.searches[i].directionActive = wasHit
			break
		}
	}

	if vesselSunk {
		e.ClearSearches()
	}
}

// RecordVesselHit remembers what the defender revealed about a hit
// vessel so the next call can estimate how much of it is left.
func (e *TargetingEngine) RecordVesselHit(vessel VesselSnapshot) {
	e.hitHistory = append(e.hitHistory, vessel)
}

// ResetPriorities runs once per turn after the calls are chosen.
func (e *TargetingEngine) ResetPriorities() {
	for i := range e.searches {
		e.searches[i].priority = e.searches[i].remainingLength
	}
}

func (e *TargetingEngine) ClearSearches() {
	e.searches = make([]TargetingSearch, 0)
}

// RandomPlacement proposes an origin and orientation for a vessel.
// The caller validates and resamples.
func (e *TargetingEngine) RandomPlacement() (Coordinates, Direction) {
	origin := NewCoordinates(e.rng.Intn(GridSize), e.rng.Intn(GridSize))
	return origin, Directions[e.rng.Intn(len(Directions))]
}

func (e *TargetingEngine) randomOpen(shots ShotBoard) (Coordinates, error) {
	open := make([]Coordinates, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := NewCoordinates(row, col)
			if shots.IsOpen(c) {
				open = append(open, c)
			}
		}
	}

	if len(open) == 0 {
		return Coordinates{}, cerr.ErrNoOpenCoordinates
	}
	return open[e.rng.Intn(len(open))], nil
}

func (e *TargetingEngine) possibleDirs(shots ShotBoard, c Coordinates) []Direction {
	dirs := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if shots.IsOpen(c.Next(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (e *TargetingEngine) randomDir(dirs []Direction) Direction {
	return dirs[e.rng.Intn(len(dirs))]
}

// spawnSearches starts a search from every Hit cell that still has an
// open neighbour and fires the first one.
func (e *TargetingEngine) spawnSearches(shots ShotBoard) (Coordinates, bool) {
	spawned := make([]TargetingSearch, 0)

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			start := NewCoordinates(row, col)
			if shots.Get(start) != CellHit {
				continue
			}

			dirs := e.possibleDirs(shots, start)
			if len(dirs) == 0 {
				continue
			}
			spawned = append(spawned, newTargetingSearch(start, dirs, e.randomDir(dirs)))
		}
	}

	if len(spawned) == 0 {
		return Coordinates{}, false
	}

	c := spawned[0].currentPos
	spawned[0].fire(c)
	e.searches = spawned

	log.Debug("searches spawned", "count", len(spawned), "anchor", spawned[0].startPos, "direction", spawned[0].direction)
	e.agePriorities(0)
	return c, true
}

func (e *TargetingEngine) assignVesselsToSearches() {
	if len(e.hitHistory) == 0 {
		return
	}

	for i := range e.searches {
		ts := &e.searches[i]

		// Latest snapshot first since it carries the most hits
		for j := len(e.hitHistory) - 1; j >= 0; j-- {
			vessel := e.hitHistory[j]
			if vessel.hasHit(ts.startPos) {
				ts.remainingLength = vessel.Length - len(vessel.Hits)
				ts.priority = ts.remainingLength
				break
			}
		}
	}

	e.hitHistory = make([]VesselSnapshot, 0, MaxShips)
}

// selectSearch returns the index with the smallest absolute
// priority; ties go to the first one found.
func (e *TargetingEngine) selectSearch() int {
	minIdx := 0
	for i := range e.searches {
		if absInt(e.searches[i].priority) < absInt(e.searches[minIdx].priority) {
			minIdx = i
		}
	}
	return minIdx
}

func (e *TargetingEngine) agePriorities(except int) {
	for i := range e.searches {
		if i != except {
			e.searches[i].priority--
		}
	}
}

// advance returns the next cell ts should fire at, retiring
// directions as needed. false means the search is exhausted.
func (e *TargetingEngine) advance(ts *TargetingSearch, shots ShotBoard) (Coordinates, bool) {
	for {
		if !ts.directionActive {
			if !e.retireDirection(ts, shots) {
				return Coordinates{}, false
			}
		}

		if c, ok := e.probeLine(ts, shots); ok {
			ts.fire(c)
			return c, true
		}
		ts.directionActive = false
	}
}

// probeLine walks from currentPos past cells already Hit and returns
// the first open cell. A miss, a sunk cell, a pending call or the
// edge of the grid closes the line.
func (e *TargetingEngine) probeLine(ts *TargetingSearch, shots ShotBoard) (Coordinates, bool) {
	c := ts.currentPos
	for shots.IsInBounds(c) && shots.Get(c) == CellHit {
		c = c.Next(ts.direction)
	}

	if shots.IsOpen(c) {
		return c, true
	}
	return Coordinates{}, false
}

// retireDirection drops the current direction and aims the search
// anew from its anchor, trying the opposite side of the same axis
// first. false means no direction is left.
func (e *TargetingEngine) retireDirection(ts *TargetingSearch, shots ShotBoard) bool {
	if len(ts.candidateDirs) == 0 {
		return false
	}

	last := ts.direction
	ts.removeCandidate(last)

	opposite := last.Opposite()
	if ts.wasOriginallyOpen(opposite) && shots.IsOpen(ts.startPos.Next(opposite)) {
		log.Debug("direction retired, reversing", "anchor", ts.startPos, "from", last, "to", opposite)
		ts.aim(opposite)
		return true
	}

	if len(ts.candidateDirs) == 0 {
		return false
	}

	ts.candidateDirs = e.possibleDirs(shots, ts.startPos)
	if len(ts.candidateDirs) == 0 {
		return false
	}

	next := e.randomDir(ts.candidateDirs)
	log.Debug("direction retired", "anchor", ts.startPos, "from", last, "to", next)
	ts.aim(next)
	return true
}
