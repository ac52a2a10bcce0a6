package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nfimport/internal/config"
)

// Setup initializes the global logger from the log configuration.
func Setup(cfg config.LogConfig) error {
	return SetupWriter(cfg, os.Stdout)
}

// SetupWriter is Setup with an explicit output, used by tests.
func SetupWriter(cfg config.LogConfig, out io.Writer) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	output := out
	if strings.ToLower(cfg.Format) != "json" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return nil
}

// WithComponent returns a logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
