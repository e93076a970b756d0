package tui

import (
	"log/slog"
	"time"

	"github.com/aalvaropc/memoform/internal/domain"
)

type Deps struct {
	Config        domain.Config
	WorkspaceRoot string

	Logger *slog.Logger
	Debug  bool

	// Set only when the file logger is ready.
	LogPath  string
	LogSince time.Time
}
