package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-salvo/api"
	"github.com/saeidalz13/battleship-salvo/console"
	"github.com/saeidalz13/battleship-salvo/db"
	"github.com/saeidalz13/battleship-salvo/internal/config"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.RunMode {
	case config.RunModeServe:
		err = runServer(ctx, cfg)
	default:
		err = runConsole(ctx, cfg)
	}

	if err != nil {
		stop()
		log.Fatal("battleship stopped", "err", err)
	}
}

func runServer(ctx context.Context, cfg config.Config) error {
	opts := []api.Option{
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithSeed(cfg.Seed),
	}

	if cfg.DatabaseUrl != "" {
		conn := db.MustConnectToDb(cfg.DatabaseUrl, db.DefaultMigrationDir)
		defer conn.Close()
		opts = append(opts, api.WithDb(conn))
	} else {
		log.Warn("DATABASE_URL not set; analytics disabled")
	}

	server := api.NewServer(opts...)
	if err := server.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runConsole(ctx context.Context, cfg config.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug("console match", "mode", cfg.GameMode, "opponent", cfg.Opponent, "seed", seed)

	out := os.Stdout
	lines := console.NewLineReader(os.Stdin)

	fmt.Fprintln(out, "\nGreetings, captains. What are your names?")
	userName, err := console.AskName(ctx, lines, out, "Player 1", "Player 1")
	if err != nil {
		return err
	}
	user := mb.NewHumanPlayer(userName, cfg.GameMode, console.NewPrompter(userName, lines, out))

	var opponent *mb.Player
	switch cfg.Opponent {
	case mb.OpponentHuman:
		opponentName, err := console.AskName(ctx, lines, out, "Player 2", "Player 2")
		if err != nil {
			return err
		}
		opponent = mb.NewHumanPlayer(opponentName, cfg.GameMode, console.NewPrompter(opponentName, lines, out))
	default:
		engine := mb.NewTargetingEngine(cfg.Opponent == mb.OpponentHard, seed)
		opponent = mb.NewComputerPlayer("Computer", cfg.GameMode, engine)
		fmt.Fprintf(out, "Player 2: %s\n", opponent.Name())
	}

	match := mb.NewMatch(cfg.GameMode, user, opponent, console.NewRenderer(out))
	first := match.RandomizeTurnOrder(rand.New(rand.NewSource(seed)))

	fmt.Fprintf(out, "\n\nGreetings, Captain %s and Captain %s.\n", user.Name(), opponent.Name())
	fmt.Fprintf(out, "The first player will be...\n%s.\n", first.Name())

	result, err := match.Play(ctx)
	if err != nil {
		return err
	}

	if err := console.WriteStatsFile(cfg.StatsFile, result); err != nil {
		log.Error("failed to write stats file", "path", cfg.StatsFile, "err", err)
	}
	fmt.Fprintln(out, "\nFair winds and following seas.")
	return nil
}
