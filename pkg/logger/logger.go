// Package logger configures the process-wide slog logger.
//
// Local environments get human-readable text on stderr; everything else
// gets JSON. When LOG_MONGO_URI is set, records are additionally shipped
// to a MongoDB collection by an async handler so log writes never block
// request-path code.
package logger

import (
	"log/slog"
	"os"

	"github.com/shashiranjanraj/luxewheels/config"
)

var log *slog.Logger = slog.Default()

// Setup builds the logger from environment configuration. Call once at boot,
// after config.Load.
func Setup() {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	if config.AppEnv() == "local" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	if uri := config.LogMongoURI(); uri != "" {
		if mh, err := newMongoHandler(uri); err != nil {
			slog.Warn("logger: mongo sink disabled", "error", err)
		} else {
			handler = newTeeHandler(handler, mh)
		}
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Debug(msg string, args ...any) { log.Debug(msg, args...) }
func Info(msg string, args ...any)  { log.Info(msg, args...) }
func Warn(msg string, args ...any)  { log.Warn(msg, args...) }
func Error(msg string, args ...any) { log.Error(msg, args...) }

// With returns a logger carrying the given attributes on every record.
func With(args ...any) *slog.Logger { return log.With(args...) }
