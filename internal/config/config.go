package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/battleship-salvo/internal/error"
	mb "github.com/saeidalz13/battleship-salvo/models/battleship"
)

const (
	StageDev  = "dev"
	StageProd = "prod"

	RunModeConsole = "console"
	RunModeServe   = "serve"

	defaultPort      = "8000"
	defaultStatsFile = "outputfile.txt"
	defaultEnvFile   = ".env"
)

type Config struct {
	Stage       string
	RunMode     string
	Port        string
	DatabaseUrl string
	GameMode    mb.GameMode
	Opponent    mb.Opponent
	StatsFile   string
	LogLevel    log.Level

	// Zero means not set
	Seed int64
}

// Load reads the configuration from the environment. Outside of prod
// a .env file is loaded first; a missing file is not an error.
func Load() (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:       getEnv("STAGE", StageDev),
		RunMode:     getEnv("RUN_MODE", RunModeConsole),
		Port:        getEnv("PORT", defaultPort),
		DatabaseUrl: os.Getenv("DATABASE_URL"),
		StatsFile:   defaultStatsFile,
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, cerr.ErrInvalidEnvVar("STAGE", cfg.Stage)
	}
	if cfg.RunMode != RunModeConsole && cfg.RunMode != RunModeServe {
		return Config{}, cerr.ErrInvalidEnvVar("RUN_MODE", cfg.RunMode)
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return Config{}, cerr.ErrInvalidEnvVar("PORT", cfg.Port)
	}
	if cfg.Stage == StageProd && cfg.RunMode == RunModeServe && cfg.DatabaseUrl == "" {
		return Config{}, cerr.ErrMissingEnvVar("DATABASE_URL")
	}

	var err error
	if cfg.GameMode, err = mb.ParseGameMode(os.Getenv("GAME_MODE")); err != nil {
		return Config{}, err
	}
	if cfg.Opponent, err = mb.ParseOpponent(os.Getenv("OPPONENT")); err != nil {
		return Config{}, err
	}

	// STATS_FILE set to empty disables the file
	if statsFile, ok := os.LookupEnv("STATS_FILE"); ok {
		cfg.StatsFile = statsFile
	}

	cfg.LogLevel = log.InfoLevel
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if cfg.LogLevel, err = log.ParseLevel(level); err != nil {
			return Config{}, cerr.ErrInvalidEnvVar("LOG_LEVEL", level)
		}
	}

	if seed := os.Getenv("SEED"); seed != "" {
		if cfg.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return Config{}, cerr.ErrInvalidEnvVar("SEED", seed)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
