package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

const (
	promptCoordinate  = "Please enter a valid coordinate (ex: A1): "
	promptOrientation = "Please enter a valid ship orientation (ex: NORTH): "

	msgInvalidCoordinate  = "Sorry, invalid coordinate. "
	msgInvalidOrientation = "Sorry, invalid orientation. "
	msgInvalidShip        = "Sorry, invalid ship.\n"
	msgPreviousCoordinate = "You cannot call a previous coordinate, Captain.\n"
)

// Prompter is a human seat at the console. It keeps asking until the
// answer is readable; whether it is legal is the match's call.
type Prompter struct {
	name  string
	lines *LineReader
	out   io.Writer
}

var _ mb.Commander = (*Prompter)(nil)

func NewPrompter(name string, lines *LineReader, out io.Writer) *Prompter {
	return &Prompter{name: name, lines: lines, out: out}
}

func (p *Prompter) readCoordinates(ctx context.Context) (mb.Coordinates, error) {
	fmt.Fprint(p.out, "\n")
	for {
		fmt.Fprint(p.out, promptCoordinate)
		line, err := p.lines.ReadLine(ctx)
		if err != nil {
			return mb.Coordinates{}, err
		}

		c, err := ParseCoordinates(line)
		if err == nil {
			return c, nil
		}
		log.Debug("unreadable coordinate", "player", p.name, "input", line)
		fmt.Fprint(p.out, msgInvalidCoordinate)
	}
}

func (p *Prompter) readOrientation(ctx context.Context) (mb.Direction, error) {
	for {
		fmt.Fprint(p.out, promptOrientation)
		line, err := p.lines.ReadLine(ctx)
		if err != nil {
			return mb.North, err
		}

		d, err := mb.ParseDirection(line)
		if err == nil {
			return d, nil
		}
		fmt.Fprint(p.out, msgInvalidOrientation)
	}
}

func (p *Prompter) RequestPlacement(ctx context.Context, class mb.VesselClass) (mb.Coordinates, mb.Direction, error) {
	fmt.Fprintf(p.out, "\n< %s (%d spaces) >", class, class.Length())

	c, err := p.readCoordinates(ctx)
	if err != nil {
		return mb.Coordinates{}, mb.North, err
	}
	d, err := p.readOrientation(ctx)
	if err != nil {
		return mb.Coordinates{}, mb.North, err
	}
	return c, d, nil
}

func (p *Prompter) RejectPlacement(class mb.VesselClass, reason error) {
	log.Debug("placement rejected", "player", p.name, "vessel", class, "reason", reason)
	fmt.Fprint(p.out, msgInvalidShip)
}

func (p *Prompter) RequestCoordinate(ctx context.Context, _ mb.ShotBoard) (mb.Coordinates, error) {
	return p.readCoordinates(ctx)
}

func (p *Prompter) RejectCoordinate(c mb.Coordinates, reason error) {
	log.Debug("coordinate rejected", "player", p.name, "coordinate", c, "reason", reason)

	if !mb.NewGrid().IsInBounds(c) {
		fmt.Fprint(p.out, msgInvalidCoordinate)
		return
	}
	fmt.Fprint(p.out, msgPreviousCoordinate)
}

// AskName prompts once and falls back when the answer is empty.
func AskName(ctx context.Context, lines *LineReader, out io.Writer, label, fallback string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	name, err := lines.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if name == "" {
		return fallback, nil
	}
	return name, nil
}
