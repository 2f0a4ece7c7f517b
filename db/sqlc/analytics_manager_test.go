package sqlc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

var testInet = pqtype.Inet{
	IPNet: net.IPNet{IP: net.ParseIP("10.0.0.7").To4(), Mask: net.CIDRMask(32, 32)},
	Valid: true,
}

func newTestDbManager(t *testing.T) (DbManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDbManager(New(db)), mock
}

func TestIncrementAndGetMatchesPlayed(t *testing.T) {
	dbm, mock := newTestDbManager(t)

	mock.ExpectExec(`INSERT INTO game_server_analytics`).
		WithArgs(testInet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT matches_played FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(testInet).
		WillReturnRows(sqlmock.NewRows([]string{"matches_played"}).AddRow(3))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := dbm.Analytics.IncrementMatchesPlayedCount(ctx, testInet); err != nil {
		t.Fatal(err)
	}
	played, err := dbm.Analytics.GetMatchesPlayedCount(ctx, testInet)
	if err != nil {
		t.Fatal(err)
	}
	if played != 3 {
		t.Fatalf("expected 3 matches played, got %d", played)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecordMatchResult(t *testing.T) {
	result := mb.MatchResult{
		MatchUuid: "a1b2c3",
		Mode:      mb.ModeSalvo,
		Winner:    "Computer",
		Loser:     "Captain",
		Rounds:    14,
		Stats: [mb.NumPlayers]mb.Stats{
			{Name: "Captain", ShipsDestroyed: 3, HitCount: 12, CallCount: 60, AccuracyPercent: 20},
			{Name: "Computer", ShipsDestroyed: 5, HitCount: 17, CallCount: 50, AccuracyPercent: 34},
		},
		WinnerIdx: 1,
	}

	tests := []struct {
		name        string
		computerWon bool
	}{
		{name: "computer won", computerWon: true},
		{name: "human won", computerWon: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dbm, mock := newTestDbManager(t)

			mock.ExpectExec(`INSERT INTO match_results`).
				WithArgs(sqlmock.AnyArg(), "a1b2c3", testInet, "salvo", "Computer", "Captain", int32(14),
					int32(17), int32(50), float64(34), int32(12), int32(60), float64(20)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			if test.computerWon {
				mock.ExpectExec(`UPDATE game_server_analytics`).
					WithArgs(testInet).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			if err := dbm.Analytics.RecordMatchResult(context.Background(), testInet, result, test.computerWon); err != nil {
				t.Fatal(err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestRecentMatches(t *testing.T) {
	dbm, mock := newTestDbManager(t)

	columns := []string{"id", "match_uuid", "server_ip", "mode", "winner", "loser", "rounds",
		"winner_hits", "winner_calls", "winner_accuracy", "loser_hits", "loser_calls", "loser_accuracy", "created_at"}
	mock.ExpectQuery(`SELECT (.+) FROM match_results`).
		WithArgs(testInet, int32(recentMatchesLimit)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("1f0e4c7a-9d1b-4a57-8f38-2b5a4f9ce0d1", "a1b2c3", "10.0.0.7/32", "classic", "Captain", "Computer", 40,
				17, 40, 42.5, 11, 40, 27.5, time.Now()))

	matches, err := dbm.Analytics.RecentMatches(context.Background(), testInet)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Winner != "Captain" || matches[0].Rounds != 40 {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
