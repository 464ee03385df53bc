package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	logFileName = "pricing.log"
)

// SetupLogger builds the root logger for the given environment. In prod the
// output is duplicated into logPath/pricing.log when the directory is writable.
func SetupLogger(env, logPath string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		var w io.Writer = os.Stdout
		if logPath != "" {
			f, err := os.OpenFile(filepath.Join(logPath, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				w = io.MultiWriter(os.Stdout, f)
			}
		}
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

// SetupTelegramHandler returns a logger that additionally forwards records at
// or above minLevel to the bot.
func SetupTelegramHandler(log *slog.Logger, sender Sender, minLevel slog.Level) *slog.Logger {
	return slog.New(NewTelegramHandler(log.Handler(), sender, minLevel))
}
