package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-salvo/db/sqlc"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
	mc "github.com/saeidalz13/battleship-salvo/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	defaultPort     string        = "8000"
	shutdownTimeout time.Duration = time.Second * 10
)

type Server struct {
	port  string
	stage string
	db    *sql.DB
	seed  int64

	GameManager    *mb.BattleshipGameManager
	SessionManager *mc.BattleshipSessionManager
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	var server Server
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	if server.stage == "" {
		server.stage = StageDev
	}

	server.SessionManager = mc.NewBattleshipSessionManager()
	server.GameManager = mb.NewBattleshipGameManager()

	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		if port == "" {
			return errors.New("port cannot be empty")
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// WithDb enables the analytics queries. Without it the server plays
// matches but records nothing.
func WithDb(db *sql.DB) Option {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

// WithSeed makes every computer opponent deterministic.
func WithSeed(seed int64) Option {
	return func(s *Server) error {
		s.seed = seed
		return nil
	}
}

func (s *Server) Port() string {
	return s.port
}

func (s *Server) Stage() string {
	return s.stage
}

// Handler wires the websocket and analytics routes.
func (s *Server) Handler() http.Handler {
	var dbManager *sqlc.DbManager
	if s.db != nil {
		dbm := sqlc.NewDbManager(sqlc.New(s.db))
		dbManager = &dbm
	}

	rp := NewRequestProcessor(s.SessionManager, s.GameManager, dbManager, s.seed)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	mux.HandleFunc("GET /analytics", rp.HandleAnalytics)
	return mux
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              "0.0.0.0:" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	go s.SessionManager.CleanupPeriodically(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", s.port, "stage", s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down server")
		return httpServer.Shutdown(shutdownCtx)
	}
}
