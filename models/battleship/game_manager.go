package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
)

// GameManager tracks the matches currently being played by the
// server. A match itself is only ever driven by one goroutine.
type GameManager interface {
	AddMatch(match *Match)
	GetMatch(matchUuid string) (*Match, error)
	TerminateMatch(matchUuid string)
	ActiveMatches() int
}

type BattleshipGameManager struct {
	matches map[string]*Match
	mu      sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		matches: make(map[string]*Match, 10),
	}
}

func (bgm *BattleshipGameManager) AddMatch(match *Match) {
	bgm.mu.Lock()
	bgm.matches[match.Uuid()] = match
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) GetMatch(matchUuid string) (*Match, error) {
	bgm.mu.RLock()
	match, prs := bgm.matches[matchUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(matchUuid)
	}

	return match, nil
}

func (bgm *BattleshipGameManager) TerminateMatch(matchUuid string) {
	bgm.mu.Lock()
	delete(bgm.matches, matchUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) ActiveMatches() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.matches)
}
