package connection

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

const defaultCleanupInterval = time.Minute * 20

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	ActiveSessions() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
	}
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(session *Session) {
	bsm.mu.Lock()
	delete(bsm.sessions, session.id)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) ActiveSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling sessions, the manager
// marks the sessions idle for longer than the cleanup interval as
// stale and deletes them. Runs until ctx is done.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.removeStale()
		}
	}
}

func (bsm *BattleshipSessionManager) removeStale() {
	assumedClosedConns := 10

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	toDelete := make([]string, 0, assumedClosedConns)
	for ID, session := range bsm.sessions {
		if session.IdleFor() > bsm.cleanupInterval {
			toDelete = append(toDelete, ID)
		}
	}

	for _, ID := range toDelete {
		delete(bsm.sessions, ID)
		log.Info("removed stale session", "session", ID)
	}
}
