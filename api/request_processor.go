package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-salvo/db/sqlc"
	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
	mc "github.com/saeidalz13/battleship-salvo/models/connection"
)

const (
	URLQueryModeKeyword       string = "mode"
	URLQueryDifficultyKeyword string = "difficulty"
	URLQueryNameKeyword       string = "name"

	defaultPlayerName   = "Captain"
	computerPlayerName  = "Computer"
	maxPlayerNameLength = 32

	maxTimeMatch time.Duration = time.Minute * 30
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RequestProcessor plays one match per websocket connection: the
// remote client against a computer opponent.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	dbManager      *sqlc.DbManager
	ipnet          net.IPNet

	// Zero picks a fresh seed per match
	seed int64
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	dbManager *sqlc.DbManager,
	seed int64,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		dbManager:      dbManager,
		ipnet:          getServerIpNet(),
		seed:           seed,
	}
}

// Picks the first non-loopback IPv4 address of the host. Falls back to
// the loopback address on hosts without one.
func getServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("failed to list network interfaces", "err", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	log.Warn("no non-loopback address found; using loopback")
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) inet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

type matchParams struct {
	mode       mb.GameMode
	hardmode   bool
	playerName string
}

func parseMatchParams(r *http.Request) (matchParams, error) {
	query := r.URL.Query()

	mode, err := mb.ParseGameMode(query.Get(URLQueryModeKeyword))
	if err != nil {
		return matchParams{}, err
	}

	opponent, err := mb.ParseOpponent(query.Get(URLQueryDifficultyKeyword))
	if err != nil {
		return matchParams{}, err
	}
	if opponent == mb.OpponentHuman {
		return matchParams{}, cerr.ErrRemoteOpponentUnsupported(opponent.String())
	}

	name := query.Get(URLQueryNameKeyword)
	if name == "" || len(name) > maxPlayerNameLength || name == computerPlayerName {
		name = defaultPlayerName
	}

	return matchParams{mode: mode, hardmode: opponent == mb.OpponentHard, playerName: name}, nil
}

func (rp RequestProcessor) matchSeed() int64 {
	if rp.seed != 0 {
		return rp.seed
	}
	return time.Now().UnixNano()
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := parseMatchParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("could not open websocket connection", "err", err)
		return
	}

	log.Info("a new connection established", "remote", conn.RemoteAddr().String())
	session := rp.sessionManager.GenerateNewSession(conn)
	defer func() {
		rp.sessionManager.TerminateSession(session)
		_ = conn.Close()
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := session.WriteMessage(resp); err != nil {
		return
	}

	rp.playMatch(session, params)
}

func (rp RequestProcessor) playMatch(session *mc.Session, params matchParams) {
	seed := rp.matchSeed()

	human := mb.NewHumanPlayer(params.playerName, params.mode, session)
	session.BindPlayer(human)
	computer := mb.NewComputerPlayer(computerPlayerName, params.mode, mb.NewTargetingEngine(params.hardmode, seed))

	match := mb.NewMatch(params.mode, human, computer, session)
	first := match.RandomizeTurnOrder(rand.New(rand.NewSource(seed)))

	rp.gameManager.AddMatch(match)
	defer rp.gameManager.TerminateMatch(match.Uuid())

	created := mc.NewMessage[mc.RespMatchCreated](mc.CodeMatchCreated)
	created.AddPayload(mc.RespMatchCreated{
		MatchUuid:      match.Uuid(),
		PlayerUuid:     human.Uuid(),
		Opponent:       computer.Name(),
		Mode:           params.mode.String(),
		StartingPlayer: first.Name(),
	})
	if err := session.WriteMessage(created); err != nil {
		return
	}

	if rp.dbManager != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
		if err := rp.dbManager.Analytics.IncrementMatchesPlayedCount(ctx, rp.inet()); err != nil {
			// for now not killing the match for it
			log.Error("failed to increment matches played", "err", err)
		}
		cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxTimeMatch)
	defer cancel()

	result, err := match.Play(ctx)
	if err != nil {
		log.Warn("match ended early", "match", match.Uuid(), "session", session.Id(), "err", err)
		return
	}
	log.Info("match finished", "match", match.Uuid(), "winner", result.Winner, "rounds", result.Rounds)

	if rp.dbManager != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
		defer cancel()
		if err := rp.dbManager.Analytics.RecordMatchResult(ctx, rp.inet(), result, match.Winner().IsComputer()); err != nil {
			log.Error("failed to record match result", "match", match.Uuid(), "err", err)
		}
	}
}

type RespAnalytics struct {
	ActiveMatches        int                `json:"active_matches"`
	ActiveSessions       int                `json:"active_sessions"`
	MatchesPlayed        int64              `json:"matches_played"`
	MatchesWonByComputer int64              `json:"matches_won_by_computer"`
	RecentMatches        []sqlc.MatchResult `json:"recent_matches"`
}

func (rp RequestProcessor) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	resp := RespAnalytics{
		ActiveMatches:  rp.gameManager.ActiveMatches(),
		ActiveSessions: rp.sessionManager.ActiveSessions(),
		RecentMatches:  []sqlc.MatchResult{},
	}

	if rp.dbManager != nil {
		ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
		defer cancel()

		var err error
		if resp.MatchesPlayed, err = rp.dbManager.Analytics.GetMatchesPlayedCount(ctx, rp.inet()); err != nil {
			writeAnalyticsErr(w, err)
			return
		}
		if resp.MatchesWonByComputer, err = rp.dbManager.Analytics.GetMatchesWonByComputerCount(ctx, rp.inet()); err != nil {
			writeAnalyticsErr(w, err)
			return
		}
		if resp.RecentMatches, err = rp.dbManager.Analytics.RecentMatches(ctx, rp.inet()); err != nil {
			writeAnalyticsErr(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to encode analytics", "err", err)
	}
}

func writeAnalyticsErr(w http.ResponseWriter, err error) {
	log.Error("analytics query failed", "err", err)
	http.Error(w, "analytics unavailable", http.StatusInternalServerError)
}
