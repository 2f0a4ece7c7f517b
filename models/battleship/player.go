package battleship

import (
	"strings"

	"github.com/dariubs/percent"
	"github.com/google/uuid"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

type GameMode uint8

const (
	ModeClassic GameMode = iota
	ModeSalvo
)

func (m GameMode) String() string {
	if m == ModeSalvo {
		return "salvo"
	}
	return "classic"
}

func ParseGameMode(value string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "classic", "":
		return ModeClassic, nil
	case "salvo":
		return ModeSalvo, nil
	}
	return ModeClassic, cerr.ErrInvalidGameMode(value)
}

// Opponent is who sits across from the first human player.
type Opponent uint8

const (
	OpponentHard Opponent = iota
	OpponentEasy
	OpponentHuman
)

func (o Opponent) String() string {
	switch o {
	case OpponentEasy:
		return "easy"
	case OpponentHuman:
		return "human"
	default:
		return "hard"
	}
}

func ParseOpponent(value string) (Opponent, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hard", "":
		return OpponentHard, nil
	case "easy":
		return OpponentEasy, nil
	case "human":
		return OpponentHuman, nil
	}
	return OpponentHard, cerr.ErrInvalidOpponent(value)
}

// Player is the aggregate a single side owns: both grids, the fleet,
// the call budget and, for a computer, its targeting engine.
type Player struct {
	uuid        string
	name        string
	mode        GameMode
	attackGrid  *Grid
	defenceGrid *Grid
	fleet       Fleet

	// engine is nil for human players
	engine    *TargetingEngine
	commander Commander

	callsPerTurn   int
	callCount      int
	hitCount       int
	shipsDestroyed int
	shipsLost      int

	// Cells of this player the opponent hit during its last turn
	prevTurnHits []Coordinates
}

func newPlayer(name string, mode GameMode) *Player {
	calls := 1
	if mode == ModeSalvo {
		calls = MaxShips
	}

	return &Player{
		uuid:         uuid.NewString()[:10],
		name:         name,
		mode:         mode,
		attackGrid:   NewGrid(),
		defenceGrid:  NewGrid(),
		fleet:        NewFleet(),
		callsPerTurn: calls,
		prevTurnHits: make([]Coordinates, 0, MaxShips),
	}
}

// NewHumanPlayer creates a player whose coordinates and placements
// come from commander.
func NewHumanPlayer(name string, mode GameMode, commander Commander) *Player {
	p := newPlayer(name, mode)
	p.commander = commander
	return p
}

// NewComputerPlayer creates a player driven by a targeting engine.
func NewComputerPlayer(name string, mode GameMode, engine *TargetingEngine) *Player {
	p := newPlayer(name, mode)
	p.engine = engine
	return p
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) IsComputer() bool {
	return p.engine != nil
}

func (p *Player) Engine() *TargetingEngine {
	return p.engine
}

func (p *Player) CallsPerTurn() int {
	return p.callsPerTurn
}

func (p *Player) ShipsDestroyed() int {
	return p.shipsDestroyed
}

func (p *Player) ShipsLost() int {
	return p.shipsLost
}

func (p *Player) HitCount() int {
	return p.hitCount
}

func (p *Player) CallCount() int {
	return p.callCount
}

func (p *Player) Accuracy() float64 {
	if p.callCount == 0 {
		return 0
	}
	return percent.PercentOf(p.hitCount, p.callCount)
}

// AttackGrid and DefenceGrid return copies; the opponent and the
// presentation layer never hold the live grids.
func (p *Player) AttackGrid() [GridSize][GridSize]CellState {
	return p.attackGrid.Snapshot()
}

func (p *Player) DefenceGrid() [GridSize][GridSize]CellState {
	return p.defenceGrid.Snapshot()
}

func (p *Player) Fleet() *Fleet {
	return &p.fleet
}

func (p *Player) PrevTurnHits() []Coordinates {
	hits := make([]Coordinates, len(p.prevTurnHits))
	copy(hits, p.prevTurnHits)
	return hits
}

func (p *Player) resetPrevTurnHits() {
	p.prevTurnHits = p.prevTurnHits[:0]
}

// loseVessel lowers the call budget in salvo mode.
// Returns whether the budget was lowered.
func (p *Player) loseVessel() bool {
	p.shipsLost++
	if p.mode == ModeSalvo && p.callsPerTurn > 0 {
		p.callsPerTurn--
		return true
	}
	return false
}

func (p *Player) Stats() Stats {
	return Stats{
		Name:            p.name,
		ShipsDestroyed:  p.shipsDestroyed,
		HitCount:        p.hitCount,
		CallCount:       p.callCount,
		AccuracyPercent: p.Accuracy(),
	}
}

type Stats struct {
	Name            string  `json:"name"`
	ShipsDestroyed  int     `json:"ships_destroyed"`
	HitCount        int     `json:"hit_count"`
	CallCount       int     `json:"call_count"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}
