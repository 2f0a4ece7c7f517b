package connection

import (
	"context"
	"encoding/json"
	"net"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	maxReadWsRetries  uint8 = 2
	backOffFactor     uint8 = 2

	// Upper bound of frames the client may send between two requests
	// before the session gives up on it
	maxInvalidSignals = 20
)

const randomInvalidCode uint8 = 255

const (
	msgInvalidPlacement  = "Sorry, invalid ship."
	msgPreviousCoord     = "You cannot call a previous coordinate, Captain."
	msgInvalidCoordinate = "That coordinate is not on the grid, Captain."
	msgInvalidSignal     = "unexpected message code"
)

type ConnectionHandler interface {
	writeToConnWithRetry(msg interface{}) error
	readFromConnWithRetry(ctx context.Context) ([]byte, error)
	onConnErr(err error) uint8
}

// Session is a remote human seat. It answers the match's requests
// by exchanging frames over the websocket connection, and reports
// every step of the match back to the client.
type Session struct {
	id     string
	conn   *websocket.Conn
	player *mb.Player

	// Unix nanoseconds of the last frame read or written. The session
	// manager reads it from its cleanup goroutine.
	lastActive atomic.Int64

	// First write failure. Reporter calls cannot return it, so it
	// surfaces on the next request instead.
	writeErr error
}

func NewSession(id string, conn *websocket.Conn) *Session {
	session := &Session{
		id:   id,
		conn: conn,
	}
	session.touch()
	return session
}

var (
	_ ConnectionHandler = (*Session)(nil)
	_ mb.Commander      = (*Session)(nil)
	_ mb.Reporter       = (*Session)(nil)
)

func (s *Session) Id() string {
	return s.id
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// IdleFor reports how long no frame went through the connection.
func (s *Session) IdleFor() time.Duration {
	return time.Since(time.Unix(0, s.lastActive.Load()))
}

// BindPlayer ties the session to the player it commands so that
// reports can tell the client's moves from the opponent's.
func (s *Session) BindPlayer(p *mb.Player) {
	s.player = p
}

// WriteMessage sends msg as a JSON frame.
func (s *Session) WriteMessage(msg interface{}) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	if err := s.writeToConnWithRetry(msg); err != nil {
		s.writeErr = err
		return err
	}
	return nil
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Warn("timeout error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn("high server load/traffic error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Warn("abnormal closure error", "session", s.id, "err", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Info("close error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Error("critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	/*
		The client is probably not ours. Breaking keeps the server from
		chewing on payloads it will never understand.

		CloseUnsupportedData (1003): binary frames on a text only server.
		CloseInvalidFramePayloadData (1007): text frames that are not UTF-8.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Warn("non-critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	log.Error("unexpected error", "session", s.id, "err", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. Timeouts and server load
// errors are retried with a linear backoff; anything else ends the
// session.
func (s *Session) writeToConnWithRetry(msg interface{}) error {
	var retries uint8

	for {
		err := s.conn.WriteJSON(msg)
		if err == nil {
			s.touch()
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Warn("writing json to ws failed; retrying", "remote", s.conn.RemoteAddr().String(), "retry", retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue
			}
			log.Error("max retries reached for writing to ws", "remote", s.conn.RemoteAddr().String(), "err", err)
			return NewConnErr(ConnLoopBreak).AddDesc(err.Error())

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).AddDesc(err.Error())

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// Reads the next frame. ctx cancellation expires the read deadline so
// a blocked read returns promptly.
func (s *Session) readFromConnWithRetry(ctx context.Context) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	var retries uint8
	for {
		_, payload, err := s.conn.ReadMessage()
		if err == nil {
			s.touch()
			return payload, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxReadWsRetries {
				retries++
				log.Warn("failed to read from ws; retrying", "remote", s.conn.RemoteAddr().String(), "retry", retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue
			}
			return nil, NewConnErr(ConnLoopBreak).AddDesc(err.Error())

		case ConnLoopAbnormalClosureRetry:
			return nil, NewConnErr(ConnLoopAbnormalClosureRetry).AddDesc(err.Error())

		default:
			return nil, NewConnErr(ConnLoopBreak).AddDesc(err.Error())
		}
	}
}

// Blocks until the client sends a frame carrying code, then decodes
// its payload into out. Frames with any other code are answered with
// CodeInvalidSignal.
func (s *Session) awaitSignal(ctx context.Context, code uint8, out interface{}) error {
	for attempt := 0; attempt < maxInvalidSignals; attempt++ {
		payload, err := s.readFromConnWithRetry(ctx)
		if err != nil {
			return err
		}

		got, err := FetchCodeFromMsg(payload)
		if err != nil || got != code {
			if err == nil {
				err = cerr.ErrUnexpectedSignal(code, got)
			}
			s.sendError(CodeInvalidSignal, err, msgInvalidSignal)
			continue
		}

		if err := json.Unmarshal(payload, out); err != nil {
			s.sendError(CodeInvalidSignal, err, msgInvalidSignal)
			continue
		}
		return nil
	}
	return NewConnErr(ConnLoopBreak).AddDesc("too many invalid signals")
}

func (s *Session) sendError(code uint8, err error, message string) {
	msg := NewMessage[NoPayload](code)
	msg.AddError(err.Error(), message)
	if writeErr := s.WriteMessage(msg); writeErr != nil {
		log.Error("failed to send error frame", "session", s.id, "code", code, "err", writeErr)
	}
}

func (s *Session) RequestPlacement(ctx context.Context, class mb.VesselClass) (mb.Coordinates, mb.Direction, error) {
	req := NewMessage[RespRequestPlacement](CodeRequestPlacement)
	req.AddPayload(RespRequestPlacement{VesselName: class.String(), Length: class.Length()})
	if err := s.WriteMessage(req); err != nil {
		return mb.Coordinates{}, mb.North, err
	}

	for {
		var msg Message[ReqPlacement]
		if err := s.awaitSignal(ctx, CodePlacement, &msg); err != nil {
			return mb.Coordinates{}, mb.North, err
		}

		orientation, err := mb.ParseDirection(msg.Payload.Orientation)
		if err != nil {
			s.sendError(CodeInvalidPlacement, err, msgInvalidPlacement)
			continue
		}
		return mb.NewCoordinates(msg.Payload.Row, msg.Payload.Col), orientation, nil
	}
}

func (s *Session) RejectPlacement(class mb.VesselClass, reason error) {
	log.Debug("placement rejected", "session", s.id, "vessel", class, "reason", reason)
	s.sendError(CodeInvalidPlacement, reason, msgInvalidPlacement)
}

func (s *Session) RequestCoordinate(ctx context.Context, _ mb.ShotBoard) (mb.Coordinates, error) {
	if err := s.WriteMessage(NewMessage[NoPayload](CodeRequestCoordinate)); err != nil {
		return mb.Coordinates{}, err
	}

	var msg Message[ReqAttack]
	if err := s.awaitSignal(ctx, CodeAttack, &msg); err != nil {
		return mb.Coordinates{}, err
	}
	return mb.NewCoordinates(msg.Payload.Row, msg.Payload.Col), nil
}

func (s *Session) RejectCoordinate(c mb.Coordinates, reason error) {
	log.Debug("coordinate rejected", "session", s.id, "coordinate", c, "reason", reason)

	message := msgPreviousCoord
	if !mb.NewGrid().IsInBounds(c) {
		message = msgInvalidCoordinate
	}
	s.sendError(CodeInvalidCoordinate, reason, message)
}

func (s *Session) ReportPlacement(p *mb.Player, class mb.VesselClass) {
	if p != s.player {
		return
	}

	msg := NewMessage[RespPlacementAccepted](CodePlacementAccepted)
	msg.AddPayload(RespPlacementAccepted{VesselName: class.String(), DefenceGrid: p.DefenceGrid()})
	s.report(msg)
}

func (s *Session) ReportTurnStart(attacker, defender *mb.Player) {
	resp := RespTurnStart{
		Attacker:     attacker.Name(),
		IsTurn:       attacker == s.player,
		CallsPerTurn: attacker.CallsPerTurn(),
	}
	if resp.IsTurn {
		resp.HitsOnYou = attacker.PrevTurnHits()
	}

	msg := NewMessage[RespTurnStart](CodeTurnStart)
	msg.AddPayload(resp)
	s.report(msg)
}

func (s *Session) ReportShotOutcome(attacker *mb.Player, verdict mb.Verdict) {
	msg := NewMessage[RespShotOutcome](CodeShotOutcome)
	msg.AddPayload(RespShotOutcome{
		Attacker:   attacker.Name(),
		Row:        verdict.Coordinates.Row,
		Col:        verdict.Coordinates.Col,
		Outcome:    verdict.Outcome.String(),
		VesselName: verdict.VesselName,
		Text:       verdict.String(),
	})
	s.report(msg)
}

func (s *Session) ReportMatchEnd(result mb.MatchResult) {
	msg := NewMessage[RespEndGame](CodeEndGame)
	msg.AddPayload(RespEndGame{
		Winner: result.Winner,
		Loser:  result.Loser,
		Rounds: result.Rounds,
		Stats:  result.Stats,
	})
	s.report(msg)
}

func (s *Session) report(msg interface{}) {
	if err := s.WriteMessage(msg); err != nil {
		log.Warn("report dropped", "session", s.id, "err", err)
	}
}

// FetchCodeFromMsg reads the code of a frame without decoding its
// payload.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return CodeSignalAbsent, nil
	}
	return *signal.Code, nil
}
