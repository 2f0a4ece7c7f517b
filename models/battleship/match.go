package battleship

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

const (
	NumPlayers = 2

	// A computer that keeps producing rejected calls is a bug, not
	// something to wait on forever
	maxComputerAttempts  = GridSize * GridSize * 4
	maxPlacementAttempts = 10000
)

// Commander supplies a human player's decisions. Implementations
// block until the human answers or ctx is done.
type Commander interface {
	RequestPlacement(ctx context.Context, class VesselClass) (Coordinates, Direction, error)
	RequestCoordinate(ctx context.Context, shots ShotBoard) (Coordinates, error)

	// Notifications that the last answer was rejected and a new one
	// is about to be requested
	RejectPlacement(class VesselClass, reason error)
	RejectCoordinate(c Coordinates, reason error)
}

// Reporter is notified of everything the presentation layer shows.
// None of its calls affect the state of the match.
type Reporter interface {
	ReportPlacement(p *Player, class VesselClass)

	// Called before the attacker's PrevTurnHits are cleared
	ReportTurnStart(attacker, defender *Player)
	ReportShotOutcome(attacker *Player, verdict Verdict)
	ReportMatchEnd(result MatchResult)
}

type Outcome uint8

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeSunk
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	default:
		return "miss"
	}
}

type Verdict struct {
	Coordinates  Coordinates
	Outcome      Outcome
	VesselName   string
	Defender     string
	CallsLowered bool
}

func (v Verdict) String() string {
	if v.Outcome == OutcomeMiss {
		return fmt.Sprintf("%s was a miss.", v.Coordinates)
	}

	text := fmt.Sprintf("%s was a hit on %s!", v.Coordinates, v.VesselName)
	if v.Outcome == OutcomeSunk {
		text += fmt.Sprintf("\n%s has been sunk!", v.VesselName)
	}
	if v.CallsLowered {
		text += fmt.Sprintf("\nThe number of coordinates %s can call has been decreased.", v.Defender)
	}
	return text
}

type MatchResult struct {
	MatchUuid string
	Mode      GameMode
	Winner    string
	Loser     string
	Rounds    int

	// In turn order
	Stats [NumPlayers]Stats

	// Index into Stats, -1 while there is no winner
	WinnerIdx int
}

// Match drives the turns between two players until one fleet is
// destroyed.
type Match struct {
	uuid     string
	mode     GameMode
	players  [NumPlayers]*Player
	reporter Reporter
	rounds   int
	finished bool
	winner   *Player
}

// NewMatch keeps first and second in turn order.
func NewMatch(mode GameMode, first, second *Player, reporter Reporter) *Match {
	return &Match{
		uuid:     uuid.NewString()[:6],
		mode:     mode,
		players:  [NumPlayers]*Player{first, second},
		reporter: reporter,
	}
}

func (m *Match) Uuid() string {
	return m.uuid
}

func (m *Match) Mode() GameMode {
	return m.mode
}

// Players returns the players in turn order.
func (m *Match) Players() [NumPlayers]*Player {
	return m.players
}

func (m *Match) IsFinished() bool {
	return m.finished
}

func (m *Match) Winner() *Player {
	return m.winner
}

// RandomizeTurnOrder picks who starts and returns that player.
func (m *Match) RandomizeTurnOrder(rng *rand.Rand) *Player {
	if rng.Intn(NumPlayers) == 1 {
		m.players[0], m.players[1] = m.players[1], m.players[0]
	}
	return m.players[0]
}

// Play places both fleets and runs rounds until the match ends.
func (m *Match) Play(ctx context.Context) (MatchResult, error) {
	if err := m.Setup(ctx); err != nil {
		return MatchResult{}, err
	}

	for !m.finished {
		if _, err := m.PlayRound(ctx); err != nil {
			return MatchResult{}, err
		}
	}

	result := m.Result()
	m.reporter.ReportMatchEnd(result)
	return result, nil
}

func (m *Match) Setup(ctx context.Context) error {
	for _, p := range m.players {
		if err := m.placeFleet(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *Match) placeFleet(ctx context.Context, p *Player) error {
	for _, class := range FleetClasses {
		placed := false

		for attempts := 1; !placed; attempts++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			var (
				origin      Coordinates
				orientation Direction
			)
			if p.IsComputer() {
				if attempts > maxPlacementAttempts {
					return fmt.Errorf("%w: %s could not be placed", cerr.ErrInvalidPlacement, class)
				}
				origin, orientation = p.engine.RandomPlacement()
			} else {
				var err error
				origin, orientation, err = p.commander.RequestPlacement(ctx, class)
				if err != nil {
					return err
				}
			}

			if err := p.fleet.Place(p.defenceGrid, class, origin, orientation); err != nil {
				if !p.IsComputer() {
					p.commander.RejectPlacement(class, err)
				}
				continue
			}
			placed = true
		}

		m.reporter.ReportPlacement(p, class)
	}
	return nil
}

// PlayRound gives each player one turn. It returns true once the
// match has a winner; the second player does not move after the
// first one has won.
func (m *Match) PlayRound(ctx context.Context) (bool, error) {
	if m.finished {
		return true, cerr.ErrMatchFinished
	}

	m.rounds++
	for i, attacker := range m.players {
		defender := m.players[NumPlayers-1-i]

		if err := m.Turn(ctx, attacker, defender); err != nil {
			return false, err
		}

		if defender.fleet.IsDestroyed() {
			m.finished = true
			m.winner = attacker
			log.Info("match finished", "match", m.uuid, "winner", attacker.name, "rounds", m.rounds)
			return true, nil
		}
	}
	return false, nil
}

// Turn chooses all of the attacker's calls first and then resolves
// them in order, which is what makes salvo searches fire in lines.
func (m *Match) Turn(ctx context.Context, attacker, defender *Player) error {
	if m.finished {
		return cerr.ErrMatchFinished
	}

	m.reporter.ReportTurnStart(attacker, defender)
	attacker.resetPrevTurnHits()

	view := newTurnView(attacker.attackGrid)
	calls := make([]Coordinates, 0, attacker.callsPerTurn)
	remaining := defender.fleet.RemainingCells()
	landed := 0

	for i := 0; i < attacker.callsPerTurn; i++ {
		// Every remaining ship cell is already called
		if landed == remaining {
			break
		}

		c, err := m.requestCoordinate(ctx, attacker, view)
		if err != nil {
			return err
		}

		if _, ok := defender.fleet.VesselAt(c); ok {
			landed++
		}
		view.mark(c)
		calls = append(calls, c)
	}

	if attacker.IsComputer() {
		attacker.engine.ResetPriorities()
	}

	for _, c := range calls {
		verdict, err := m.resolveShot(attacker, defender, c)
		if err != nil {
			return fmt.Errorf("%s: %w", cerr.ConstErrShotFailed, err)
		}
		m.reporter.ReportShotOutcome(attacker, verdict)
	}
	return nil
}

func (m *Match) requestCoordinate(ctx context.Context, attacker *Player, view *turnView) (Coordinates, error) {
	for attempts := 1; ; attempts++ {
		if err := ctx.Err(); err != nil {
			return Coordinates{}, err
		}

		var (
			c   Coordinates
			err error
		)
		if attacker.IsComputer() {
			c, err = attacker.engine.NextCoordinate(view)
		} else {
			c, err = attacker.commander.RequestCoordinate(ctx, view)
		}
		if err != nil {
			return Coordinates{}, err
		}

		if err := validateCall(view, c); err != nil {
			if attacker.IsComputer() {
				if attempts >= maxComputerAttempts {
					return Coordinates{}, cerr.ErrComputerCoordinateExhausted(attempts)
				}
				continue
			}
			attacker.commander.RejectCoordinate(c, err)
			continue
		}
		return c, nil
	}
}

func validateCall(view *turnView, c Coordinates) error {
	if !view.IsInBounds(c) {
		return cerr.ErrCoordinateOutOfBound(c.Row, c.Col)
	}
	if view.isPending(c) {
		return cerr.ErrCoordinateCalledThisTurn(c.Row, c.Col)
	}
	if !view.grid.IsOpen(c) {
		return cerr.ErrCoordinateAlreadyCalled(c.Row, c.Col)
	}
	return nil
}

func (m *Match) resolveShot(attacker, defender *Player, c Coordinates) (Verdict, error) {
	verdict := Verdict{Coordinates: c, Defender: defender.name}
	attacker.callCount++

	idx, hit := defender.fleet.VesselAt(c)
	if !hit {
		verdict.Outcome = OutcomeMiss
		if err := attacker.attackGrid.Set(c, CellMiss); err != nil {
			return verdict, err
		}
		if attacker.IsComputer() {
			attacker.engine.RecordShotResult(c, false, false)
		}
		return verdict, nil
	}

	vessel := defender.fleet.Vessel(idx)
	vessel.RecordHit(c)
	if err := defender.defenceGrid.Set(c, CellHit); err != nil {
		return verdict, err
	}
	if err := attacker.attackGrid.Set(c, CellHit); err != nil {
		return verdict, err
	}
	attacker.hitCount++
	defender.prevTurnHits = append(defender.prevTurnHits, c)

	verdict.Outcome = OutcomeHit
	verdict.VesselName = vessel.Name()

	sunk := vessel.IsSunk()
	if sunk {
		verdict.Outcome = OutcomeSunk
		verdict.CallsLowered = defender.loseVessel()
		attacker.shipsDestroyed++

		for _, hc := range vessel.hitCoords {
			if err := defender.defenceGrid.Set(hc, CellSunk); err != nil {
				return verdict, err
			}
			if err := attacker.attackGrid.Set(hc, CellSunk); err != nil {
				return verdict, err
			}
		}
	}

	if attacker.IsComputer() {
		attacker.engine.RecordVesselHit(vessel.Snapshot())
		attacker.engine.RecordShotResult(c, true, sunk)
	}
	return verdict, nil
}

// Result is meaningful once the match is finished.
func (m *Match) Result() MatchResult {
	result := MatchResult{
		MatchUuid: m.uuid,
		Mode:      m.mode,
		Rounds:    m.rounds,
		Stats:     [NumPlayers]Stats{m.players[0].Stats(), m.players[1].Stats()},
		WinnerIdx: -1,
	}

	if m.winner != nil {
		result.Winner = m.winner.name
		for i, p := range m.players {
			if p == m.winner {
				result.WinnerIdx = i
			} else {
				result.Loser = p.name
			}
		}
	}
	return result
}
