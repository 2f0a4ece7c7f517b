package connection

import (
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespMatchCreated struct {
	MatchUuid      string `json:"match_uuid"`
	PlayerUuid     string `json:"player_uuid"`
	Opponent       string `json:"opponent"`
	Mode           string `json:"mode"`
	StartingPlayer string `json:"starting_player"`
}

type RespRequestPlacement struct {
	VesselName string `json:"vessel_name"`
	Length     int    `json:"length"`
}

type RespPlacementAccepted struct {
	VesselName  string                                 `json:"vessel_name"`
	DefenceGrid [mb.GridSize][mb.GridSize]mb.CellState `json:"defence_grid"`
}

type RespTurnStart struct {
	Attacker     string           `json:"attacker"`
	IsTurn       bool             `json:"is_turn"`
	CallsPerTurn int              `json:"calls_per_turn"`
	HitsOnYou    []mb.Coordinates `json:"hits_on_you,omitempty"`
}

type RespShotOutcome struct {
	Attacker   string `json:"attacker"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Outcome    string `json:"outcome"`
	VesselName string `json:"vessel_name,omitempty"`
	Text       string `json:"text"`
}

type RespEndGame struct {
	Winner string                  `json:"winner"`
	Loser  string                  `json:"loser"`
	Rounds int                     `json:"rounds"`
	Stats  [mb.NumPlayers]mb.Stats `json:"stats"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
