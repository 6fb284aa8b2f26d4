package logger

import (
	"os"
	"strings"
	"time"

	"github.com/lshigami/Gradebook/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the global zerolog logger with defaults. It runs before
// configuration is loaded so config loading itself can log.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Apply reconfigures the global logger from loaded configuration.
func Apply(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Log.Level)))
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("level", cfg.Log.Level).Msg("Unknown log level, keeping info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
