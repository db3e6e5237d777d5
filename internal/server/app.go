package server

import (
	"os"
	"time"

	. "DeepInvaders/internal/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	ConfigPath string
	Overrides  ParamOverrides
	Debug      bool
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		ConfigPath: "configs/game.json",
	}
}

func resolveParams(cfg AppConfig) Params {
	params := DefaultParams()
	loaded, err := loadParamsFromFile(cfg.ConfigPath, params)
	if err != nil {
		log.Warn().Err(err).Msg("game config unreadable, using defaults")
	} else {
		params = loaded
	}
	params = applyOverrides(params, cfg.Overrides)
	return SanitizeParams(params)
}

// StartApp wires the hub to the socket layer and serves until the process
// dies.
func StartApp(addr string, cfg AppConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	params := resolveParams(cfg)
	sockets := NewSocketServer()
	hub := NewHub(params, sockets)
	sockets.SetHub(hub)

	// Sweep rooms that lost all members without a clean leave.
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			hub.CleanupEmptyRooms()
		}
	}()

	router := NewRouter(hub, sockets)
	log.Info().
		Str("addr", addr).
		Float64("tickHz", params.TickHz).
		Float64("playerSpeed", params.PlayerSpeed).
		Float64("enemySpeed", params.EnemySpeed).
		Msg("starting game server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
