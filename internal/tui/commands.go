package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hokuto/jiten/internal/store"
	"github.com/hokuto/jiten/internal/updater"
)

// Command factories for async operations

// LoadDatabaseCmd reads the store snapshot: readiness, versions, last check
// and all entries for the search index
func LoadDatabaseCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		entries, err := st.AllKanji()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading database"}
		}

		msg := DatabaseLoadedMsg{
			Readiness: st.Readiness(),
			Versions:  st.Versions(),
			Entries:   entries,
		}
		if t, ok := st.LastCheck(); ok {
			msg.LastCheck = &t
		}
		return msg
	}
}

// ListenUpdatesCmd reads the next lifecycle snapshot from the pipeline.
// The Update handler reissues it after every message so the stream is
// pumped for the life of the program.
func ListenUpdatesCmd(p *updater.Pipeline) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-p.States()
		if !ok {
			return nil
		}
		return UpdateStateMsg{State: state}
	}
}

// ClearStatusCmd returns a command that clears the status bar after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
