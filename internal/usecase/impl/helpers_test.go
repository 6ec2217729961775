package impl

import (
	"io"
	"log/slog"

	"blog/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Posts: &config.PostsConfig{DefaultPageSize: 4, MaxPageSize: 10},
	}
}
