package console

import (
	"fmt"
	"io"
	"strings"

	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

const (
	boardPadding = 15

	markerEmpty = '*'
	markerMiss  = '-'
	markerHit   = 'x'
	markerShip  = 'O'
	markerSunk  = '~'
)

func marker(state mb.CellState) rune {
	switch state {
	case mb.CellMiss:
		return markerMiss
	case mb.CellHit:
		return markerHit
	case mb.CellShip:
		return markerShip
	case mb.CellSunk:
		return markerSunk
	default:
		return markerEmpty
	}
}

// RenderBoard draws cells framed, with rows A-J and columns 1-10.
// info is right aligned on the title line.
func RenderBoard(w io.Writer, title, info string, cells [mb.GridSize][mb.GridSize]mb.CellState) {
	var numbers strings.Builder
	numbers.WriteString("    ")
	for i := 1; i <= mb.GridSize; i++ {
		fmt.Fprintf(&numbers, "%-3d", i)
	}

	bar := strings.Repeat("-", numbers.Len()+2)
	pad := strings.Repeat(" ", boardPadding)

	fmt.Fprintf(w, "\n\n%s%-*s%s\n", pad, len(bar)-len(info), title, info)
	fmt.Fprintf(w, "%s%s\n", pad, bar)
	fmt.Fprintf(w, "%s|%s|\n", pad, numbers.String())

	for row := 0; row < mb.GridSize; row++ {
		var line strings.Builder
		fmt.Fprintf(&line, " %c", 'A'+row)
		for col := 0; col < mb.GridSize; col++ {
			line.WriteString("  ")
			line.WriteRune(marker(cells[row][col]))
		}
		fmt.Fprintf(w, "%s|%-*s|\n", pad, numbers.Len(), line.String())
	}

	fmt.Fprintf(w, "%s%s\n\n", pad, bar)
}
