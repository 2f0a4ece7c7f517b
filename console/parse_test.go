package console

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    mb.Coordinates
		wantErr bool
	}{
		{name: "top left", input: "A1", want: mb.NewCoordinates(0, 0)},
		{name: "lower case", input: "c7", want: mb.NewCoordinates(2, 6)},
		{name: "two digit column", input: "J10", want: mb.NewCoordinates(9, 9)},
		{name: "surrounding spaces", input: "  e5 ", want: mb.NewCoordinates(4, 4)},
		{name: "column past the edge is left to the match", input: "B11", want: mb.NewCoordinates(1, 10)},
		{name: "row letter past J", input: "K1", wantErr: true},
		{name: "zero column", input: "A0", wantErr: true},
		{name: "missing column", input: "A", wantErr: true},
		{name: "not a number", input: "Ax", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseCoordinates(test.input)
			if test.wantErr {
				if !errors.Is(err, cerr.ErrInvalidCoordinate) {
					t.Fatalf("expected invalid coordinate error, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Fatalf("expected: %v\tgot: %v", test.want, got)
			}
		})
	}
}
