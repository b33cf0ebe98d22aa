package tui

import (
	"time"

	"github.com/hokuto/jiten/internal/dict"
	"github.com/hokuto/jiten/internal/updater"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DatabaseLoadedMsg carries a fresh snapshot of the local store
type DatabaseLoadedMsg struct {
	Readiness dict.Readiness
	Versions  map[dict.DataSetKind]dict.VersionInfo
	LastCheck *time.Time
	Entries   []dict.KanjiEntry
}

// UpdateStateMsg carries one update lifecycle snapshot from the pipeline
type UpdateStateMsg struct {
	State updater.State
}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
