package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrShotFailed = "shot resolution failed"
)

var (
	ErrInvalidPlacement      = errors.New("invalid vessel placement")
	ErrInvalidCoordinate     = errors.New("invalid coordinate")
	ErrNoOpenCoordinates     = errors.New("no open coordinates left on the grid")
	ErrIllegalCellTransition = errors.New("illegal cell state transition")
	ErrMatchFinished         = errors.New("match is already finished")
	ErrInvalidDirection      = errors.New("invalid direction")
)

func ErrCoordinateOutOfBound(row, col int) error {
	return fmt.Errorf("%w: out of grid bound\trow: %d\tcol: %d", ErrInvalidCoordinate, row, col)
}

func ErrCoordinateAlreadyCalled(row, col int) error {
	return fmt.Errorf("%w: already called in a previous turn\trow: %d\tcol: %d", ErrInvalidCoordinate, row, col)
}

func ErrCoordinateCalledThisTurn(row, col int) error {
	return fmt.Errorf("%w: already called this turn\trow: %d\tcol: %d", ErrInvalidCoordinate, row, col)
}

func ErrPlacementOutOfBound(vessel string, row, col int, direction string) error {
	return fmt.Errorf("%w: %s leaves the grid\trow: %d\tcol: %d\tdirection: %s", ErrInvalidPlacement, vessel, row, col, direction)
}

func ErrPlacementOverlap(vessel string, row, col int) error {
	return fmt.Errorf("%w: %s overlaps another vessel at\trow: %d\tcol: %d", ErrInvalidPlacement, vessel, row, col)
}

func ErrCellTransition(row, col int, from, to string) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d\tfrom: %s\tto: %s", ErrIllegalCellTransition, row, col, from, to)
}

func ErrDirectionUnknown(value string) error {
	return fmt.Errorf("%w: %q", ErrInvalidDirection, value)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrComputerCoordinateExhausted(attempts int) error {
	return fmt.Errorf("computer could not produce a valid coordinate after %d attempts", attempts)
}

func ErrInvalidGameMode(mode string) error {
	return fmt.Errorf("the game mode must be classic or salvo, got: %s", mode)
}

func ErrInvalidOpponent(opponent string) error {
	return fmt.Errorf("the opponent must be easy, hard or human, got: %s", opponent)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id not found, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrUnexpectedSignal(want, got uint8) error {
	return fmt.Errorf("unexpected signal code\twant: %d\tgot: %d", want, got)
}

func ErrInvalidEnvVar(key, value string) error {
	return fmt.Errorf("invalid value for env var %s: %q", key, value)
}

func ErrMissingEnvVar(key string) error {
	return fmt.Errorf("env var %s must be set", key)
}

func ErrRemoteOpponentUnsupported(opponent string) error {
	return fmt.Errorf("remote matches are played against the computer; opponent not supported: %s", opponent)
}

func ErrCoordinateUnreadable(input string) error {
	return fmt.Errorf("%w: cannot read %q, expected a letter and a number (ex: A1)", ErrInvalidCoordinate, input)
}
