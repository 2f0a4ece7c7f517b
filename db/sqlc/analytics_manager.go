package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

const recentMatchesLimit = 20

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementMatchesPlayedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementMatchesPlayedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetMatchesPlayedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetMatchesPlayedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetMatchesWonByComputerCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetMatchesWonByComputerCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) RecentMatches(ctx context.Context, serverIpNet pqtype.Inet) ([]MatchResult, error) {
	return a.queries.ListRecentMatchResults(ctx, ListRecentMatchResultsParams{
		ServerIp: serverIpNet,
		Limit:    recentMatchesLimit,
	})
}

// RecordMatchResult stores a finished match. The computer win counter
// only moves when computerWon is set.
func (a *AnalyticsManager) RecordMatchResult(ctx context.Context, serverIpNet pqtype.Inet, result mb.MatchResult, computerWon bool) error {
	winner, loser := result.Stats[0], result.Stats[1]
	if result.WinnerIdx == 1 {
		winner, loser = loser, winner
	}

	err := a.queries.InsertMatchResult(ctx, InsertMatchResultParams{
		ID:             uuid.New(),
		MatchUuid:      result.MatchUuid,
		ServerIp:       serverIpNet,
		Mode:           result.Mode.String(),
		Winner:         result.Winner,
		Loser:          result.Loser,
		Rounds:         int32(result.Rounds),
		WinnerHits:     int32(winner.HitCount),
		WinnerCalls:    int32(winner.CallCount),
		WinnerAccuracy: winner.AccuracyPercent,
		LoserHits:      int32(loser.HitCount),
		LoserCalls:     int32(loser.CallCount),
		LoserAccuracy:  loser.AccuracyPercent,
	})
	if err != nil {
		return err
	}

	if computerWon {
		return a.queries.IncrementMatchesWonByComputerCount(ctx, serverIpNet)
	}
	return nil
}
