package main

import (
	"log/slog"
	"os"
)

var levelVar = &slog.LevelVar{}

func newLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar})
	return slog.New(handler).With(slog.String("module", "lru-replay"))
}

func setDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}
