package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

const (
	statsLabelWidth  = 25
	statsPlayerWidth = 20
)

// Renderer prints the match as it happens. Boards are only shown to
// human players, at the start of their own turn.
type Renderer struct {
	out io.Writer
}

var _ mb.Reporter = (*Renderer)(nil)

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) ReportPlacement(p *mb.Player, class mb.VesselClass) {
	if p.IsComputer() {
		return
	}

	fmt.Fprintf(r.out, "\n%s set!\n", class)
	if p.Fleet().Len() == mb.MaxShips {
		RenderBoard(r.out, p.Name()+"'s Ships", fmt.Sprintf("Ships Lost: %d", p.ShipsLost()), p.DefenceGrid())
	}
}

func (r *Renderer) ReportTurnStart(attacker, defender *mb.Player) {
	if attacker.IsComputer() {
		fmt.Fprintf(r.out, "\nIt is Captain %s's turn.\n", attacker.Name())
		return
	}

	RenderBoard(r.out, attacker.Name()+"'s Ships", fmt.Sprintf("Ships Lost: %d", attacker.ShipsLost()), attacker.DefenceGrid())
	RenderBoard(r.out, attacker.Name()+"'s Shots", fmt.Sprintf("Ships Taken: %d", attacker.ShipsDestroyed()), attacker.AttackGrid())

	calls := attacker.CallsPerTurn()
	plural := ""
	if calls > 1 {
		plural = "s"
	}
	fmt.Fprintf(r.out, "\nIt is Captain %s's turn. You have %d call%s.\n", attacker.Name(), calls, plural)

	if hits := attacker.PrevTurnHits(); len(hits) > 0 {
		fmt.Fprintf(r.out, "WARNING: %s has hit your fleet at %s.\n", defender.Name(), joinCoordinates(hits))
	} else {
		fmt.Fprintf(r.out, "NOTE: %s has not hit your fleet.\n", defender.Name())
	}
}

func (r *Renderer) ReportShotOutcome(_ *mb.Player, verdict mb.Verdict) {
	fmt.Fprintln(r.out, verdict.String())
}

func (r *Renderer) ReportMatchEnd(result mb.MatchResult) {
	fmt.Fprintf(r.out, "\nCaptain %s has been defeated!\n\n", result.Loser)
	fmt.Fprint(r.out, StatsTable(result))
}

// "A1", "A1 and B2", "A1, B2 and C3"
func joinCoordinates(coords []mb.Coordinates) string {
	var b strings.Builder
	for i, c := range coords {
		b.WriteString(c.String())
		switch {
		case i == len(coords)-2:
			b.WriteString(" and ")
		case i < len(coords)-2:
			b.WriteString(", ")
		}
	}
	return b.String()
}

func StatsTable(result mb.MatchResult) string {
	label := func(idx int) string {
		if idx == result.WinnerIdx {
			return result.Stats[idx].Name + " (won)"
		}
		return result.Stats[idx].Name + " (lost)"
	}

	first, second := result.Stats[0], result.Stats[1]
	row := func(name string, a, b interface{}) string {
		return fmt.Sprintf("%-*s%-*v%v\n", statsLabelWidth, name, statsPlayerWidth, a, b)
	}

	playerRow := row("Player", label(0), label(1))

	var b strings.Builder
	b.WriteString("Game Stats:\n")
	b.WriteString(strings.Repeat("-", len(playerRow)-1) + "\n")
	b.WriteString(playerRow)
	b.WriteString(row("Ships Destroyed", first.ShipsDestroyed, second.ShipsDestroyed))
	b.WriteString(row("Hits", first.HitCount, second.HitCount))
	b.WriteString(row("Calls", first.CallCount, second.CallCount))
	b.WriteString(row("Accuracy", fmt.Sprintf("%.2f%%", first.AccuracyPercent), fmt.Sprintf("%.2f%%", second.AccuracyPercent)))
	return b.String()
}

// WriteStatsFile replaces path with the stats table. An empty path
// writes nothing.
func WriteStatsFile(path string, result mb.MatchResult) error {
	if path == "" {
		return nil
	}
	return os.WriteFile(path, []byte(StatsTable(result)), 0o644)
}
