package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hokuto/jiten/internal/config"
	"github.com/hokuto/jiten/internal/dict"
	"github.com/hokuto/jiten/internal/search"
	"github.com/hokuto/jiten/internal/store"
	"github.com/hokuto/jiten/internal/tui/components"
	"github.com/hokuto/jiten/internal/tui/styles"
	"github.com/hokuto/jiten/internal/updater"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLookup ApplicationState = iota
	StateStatus
	StateHelp
)

// Vertical layout: header line + footer line
const ChromeHeight = 2

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Collaborators
	Store    *store.Store
	Pipeline *updater.Pipeline
	Index    *search.Index
	Config   *config.Config
	Keys     KeyMap

	// UI components
	Status  components.DBStatus
	Lang    components.LangSelect
	Results components.ResultsList
	Input   textinput.Model

	// Data snapshot (owned here, pushed into components each render)
	Readiness   dict.Readiness
	Versions    map[dict.DataSetKind]dict.VersionInfo
	UpdateState updater.State

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(st *store.Store, pipeline *updater.Pipeline, idx *search.Index, cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	// Intents close over long-lived collaborators only; they are
	// fire-and-forget from the panel's point of view.
	intents := components.Intents{
		RequestUpdate: func() {
			pipeline.Request(cfg.Update.Lang)
		},
		Cancel: func() {
			pipeline.Cancel()
		},
		Destroy: func() {
			pipeline.Close()
		},
		SetLanguage: func(code string) {
			cfg.Update.Lang = code
			if err := config.SaveLang(code); err != nil {
				logger.Warn("failed to persist language", "error", err)
			}
			// A language switch means a fresh data set in that language
			pipeline.Request(code)
		},
	}

	ti := textinput.New()
	ti.Placeholder = "Search kanji, meaning or reading..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return Model{
		State:       StateLookup,
		Store:       st,
		Pipeline:    pipeline,
		Index:       idx,
		Config:      cfg,
		Keys:        DefaultKeyMap(),
		Status:      components.NewDBStatus(intents),
		Lang:        components.NewLangSelect(),
		Results:     components.NewResultsList(),
		Input:       ti,
		Readiness:   dict.ReadinessInitializing,
		UpdateState: updater.Idle{},
		logger:      logger,
	}
}

// Init starts the database load and the update state listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadDatabaseCmd(m.Store),
		ListenUpdatesCmd(m.Pipeline),
		m.Status.Init(),
		textinput.Blink,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case DatabaseLoadedMsg:
		m.Ready = true
		m.Readiness = msg.Readiness
		m.Versions = msg.Versions
		m.Index.Rebuild(msg.Entries)
		// Seed the idle state with the persisted last check unless the
		// pipeline is mid-flight.
		if _, idle := m.UpdateState.(updater.Idle); idle {
			m.UpdateState = updater.Idle{LastCheck: msg.LastCheck}
		}
		m.refreshResults()
		return m, nil

	case UpdateStateMsg:
		m.UpdateState = msg.State
		cmds := []tea.Cmd{ListenUpdatesCmd(m.Pipeline)}
		switch st := msg.State.(type) {
		case updater.Idle:
			// A finished run may have replaced the data set
			cmds = append(cmds, LoadDatabaseCmd(m.Store))
		case updater.Errored:
			m.logger.Warn("update failed", "error", st.Err)
		}
		return m, tea.Batch(cmds...)

	case ErrMsg:
		m.logger.Error("error", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Status, cmd = m.Status.Update(msg)
		return m, cmd
	}

	// Cursor blink etc.
	if m.State == StateLookup {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Quit always works
	if key == "ctrl+c" {
		m.Pipeline.Close()
		return m, tea.Quit
	}

	// Language modal swallows keys while visible
	if m.Lang.IsVisible() {
		if handled, selection := m.Lang.HandleKey(key); handled {
			if selection != nil {
				m.Status.EmitLanguage(selection.Code)
			}
			return m, nil
		}
	}

	if m.State == StateHelp {
		switch key {
		case "esc", "?", "q":
			m.State = StateStatus
		}
		return m, nil
	}

	switch key {
	case "tab":
		if m.State == StateLookup {
			m.State = StateStatus
			m.Input.Blur()
		} else {
			m.State = StateLookup
			m.Input.Focus()
		}
		return m, nil
	}

	if m.State == StateStatus {
		return m.handleStatusKey(key)
	}
	return m.handleLookupKey(msg)
}

// handleStatusKey handles keys on the database status view
func (m Model) handleStatusKey(key string) (tea.Model, tea.Cmd) {
	view := m.currentStatusView()

	switch key {
	case "q":
		m.Pipeline.Close()
		return m, tea.Quit
	case "?":
		m.State = StateHelp
		return m, nil
	case "u", "enter":
		m.invokeIntent(view, components.IntentRequestUpdate)
		return m, nil
	case "x", "esc":
		m.invokeIntent(view, components.IntentCancel)
		return m, nil
	case "l":
		if view.ShowLangSelect {
			m.Lang.Show(dict.LanguageCodes, dict.LanguageNames, components.SelectedLang(m.Versions))
		}
		return m, nil
	}
	return m, nil
}

// handleLookupKey handles keys on the lookup view
func (m Model) handleLookupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Input.SetValue("")
		m.refreshResults()
		return m, nil
	case "up", "down":
		m.Results.HandleKey(msg.String())
		return m, nil
	}

	var cmd tea.Cmd
	before := m.Input.Value()
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != before {
		m.refreshResults()
	}
	return m, cmd
}

// invokeIntent forwards the first action bound to the wanted intent,
// honoring its enabled flag
func (m Model) invokeIntent(view components.StatusView, intent components.Intent) {
	for _, action := range view.Actions {
		if action.Intent == intent {
			m.Status.Invoke(action)
			return
		}
	}
}

// currentStatusView pushes the latest snapshot into the panel and returns
// its view description
func (m *Model) currentStatusView() components.StatusView {
	m.Status.SetSnapshot(m.Readiness, m.Versions, m.UpdateState)
	return m.Status.CurrentView()
}

// refreshResults reruns the lookup for the current query
func (m *Model) refreshResults() {
	query := m.Input.Value()
	m.Results.SetResults(m.Index.Search(query), query)
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	m.Status.SetSize(m.Width - 2)
	m.Results.SetSize(m.Width, contentHeight-2) // input line + spacing
	m.Input.Width = m.Width - 6
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch m.State {
	case StateStatus:
		m.Status.SetSnapshot(m.Readiness, m.Versions, m.UpdateState)
		content = m.Status.View()
		if m.Lang.IsVisible() {
			modal := m.Lang.View()
			content = lipgloss.Place(m.Width, m.Height-ChromeHeight,
				lipgloss.Center, lipgloss.Center, modal)
		}
	default:
		content = m.Input.View() + "\n" + m.Results.View()
	}

	header := styles.TitleStyle.Render("jiten") + " " +
		styles.DimStyle.Render("offline kanji dictionary")

	return header + "\n" + content + "\n" + m.renderFooter()
}

// renderFooter renders the status/help line
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SubtitleStyle.Render(m.StatusMsg)
	}

	hints := []string{
		hint(m.Keys.ToggleView.Help().Key, m.Keys.ToggleView.Help().Desc),
	}
	if m.State == StateStatus {
		hints = append(hints,
			hint(m.Keys.CheckUpdate.Help().Key, m.Keys.CheckUpdate.Help().Desc),
			hint(m.Keys.Language.Help().Key, m.Keys.Language.Help().Desc),
			hint(m.Keys.Help.Help().Key, m.Keys.Help.Help().Desc),
		)
	}
	hints = append(hints, hint(m.Keys.Quit.Help().Key, m.Keys.Quit.Help().Desc))

	return strings.Join(hints, "  ")
}

func hint(key, desc string) string {
	return styles.HelpKeyStyle.Render(key) + " " + styles.HelpDescStyle.Render(desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"tab", "switch between lookup and database status"},
		{"/", "type to search (lookup view)"},
		{"j/k", "move selection"},
		{"u", "check for updates (status view)"},
		{"x", "cancel a running check or download"},
		{"l", "change data set language"},
		{"?", "toggle this help"},
		{"C-c", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Help"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(row.key, 6)))
		b.WriteString(styles.HelpDescStyle.Render(row.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("esc to close"))
	return b.String()
}
