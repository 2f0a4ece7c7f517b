package battleship

const (
	// A search whose vessel has not been identified yet
	unresolvedLength   = -1
	unresolvedPriority = -1
)

// TargetingSearch is one directional probe anchored at a confirmed hit.
type TargetingSearch struct {
	startPos   Coordinates
	currentPos Coordinates
	nextPos    Coordinates
	visited    []Coordinates

	// candidateDirs shrinks as directions are retired; originalDirs
	// keeps the directions that were open when the search spawned.
	candidateDirs []Direction
	originalDirs  []Direction

	direction       Direction
	directionActive bool
	remainingLength int
	priority        int
}

func newTargetingSearch(start Coordinates, dirs []Direction, direction Direction) TargetingSearch {
	original := make([]Direction, len(dirs))
	copy(original, dirs)

	ts := TargetingSearch{
		startPos:        start,
		visited:         make([]Coordinates, 0, MaxShips),
		candidateDirs:   dirs,
		originalDirs:    original,
		remainingLength: unresolvedLength,
		priority:        unresolvedPriority,
	}
	ts.aim(direction)
	return ts
}

// aim points the search at direction d, starting again from the anchor.
func (ts *TargetingSearch) aim(d Direction) {
	ts.direction = d
	ts.currentPos = ts.startPos.Next(d)
	ts.nextPos = ts.currentPos.Next(d)
	ts.directionActive = true
}

// fire consumes currentPos and steps one cell further along the line.
func (ts *TargetingSearch) fire(c Coordinates) {
	ts.visited = append(ts.visited, c)
	ts.currentPos = c.Next(ts.direction)
	ts.nextPos = ts.currentPos.Next(ts.direction)
}

func (ts *TargetingSearch) hasVisited(c Coordinates) bool {
	for _, v := range ts.visited {
		if v == c {
			return true
		}
	}
	return false
}

func (ts *TargetingSearch) isCandidate(d Direction) bool {
	return containsDirection(ts.candidateDirs, d)
}

func (ts *TargetingSearch) wasOriginallyOpen(d Direction) bool {
	return containsDirection(ts.originalDirs, d)
}

func (ts *TargetingSearch) removeCandidate(d Direction) {
	kept := make([]Direction, 0, len(ts.candidateDirs))
	for _, cd := range ts.candidateDirs {
		if cd != d {
			kept = append(kept, cd)
		}
	}
	ts.candidateDirs = kept
}

func (ts *TargetingSearch) StartPos() Coordinates {
	return ts.startPos
}

func (ts *TargetingSearch) CurrentPos() Coordinates {
	return ts.currentPos
}

func (ts *TargetingSearch) NextPos() Coordinates {
	return ts.nextPos
}

func (ts *TargetingSearch) Direction() Direction {
	return ts.direction
}

func (ts *TargetingSearch) DirectionActive() bool {
	return ts.directionActive
}

func (ts *TargetingSearch) RemainingLength() int {
	return ts.remainingLength
}

func (ts *TargetingSearch) Priority() int {
	return ts.priority
}

func (ts *TargetingSearch) Visited() []Coordinates {
	visited := make([]Coordinates, len(ts.visited))
	copy(visited, ts.visited)
	return visited
}

func (ts *TargetingSearch) CandidateDirections() []Direction {
	dirs := make([]Direction, len(ts.candidateDirs))
	copy(dirs, ts.candidateDirs)
	return dirs
}

func containsDirection(dirs []Direction, d Direction) bool {
	for _, cd := range dirs {
		if cd == d {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
