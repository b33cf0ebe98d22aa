package updater

import (
	"time"

	"github.com/hokuto/jiten/internal/dict"
)

// State is one snapshot of the update lifecycle. It is a closed set: exactly
// one variant is active at a time and only this package constructs them.
// Consumers dispatch with a type switch.
type State interface {
	updateState()
}

// Idle means no update activity is in flight
type Idle struct {
	LastCheck *time.Time // Time of the last completed check, nil if never checked
}

// Checking means a version manifest fetch is in flight
type Checking struct{}

// Downloading means a data snapshot download is in flight
type Downloading struct {
	Version  dict.VersionTriple
	Progress float64 // Fraction in [0,1]
}

// UpdatingDB means the downloaded snapshot is being written to the store.
// This phase is not cancellable.
type UpdatingDB struct {
	Version dict.VersionTriple
}

// Errored means the last run failed; Err carries the user-facing message
type Errored struct {
	Err error
}

func (Idle) updateState()        {}
func (Checking) updateState()    {}
func (Downloading) updateState() {}
func (UpdatingDB) updateState()  {}
func (Errored) updateState()     {}
