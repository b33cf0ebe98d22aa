package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hokuto/jiten/internal/dict"
	"github.com/hokuto/jiten/internal/tui/styles"
	"github.com/hokuto/jiten/internal/updater"
)

// Attribution links for the kanji data set
const (
	kanjidicWikiURL = "https://www.edrdg.org/wiki/index.php/KANJIDIC_Project"
	edrdgHomeURL    = "https://www.edrdg.org/"
	edrdgLicenceURL = "https://www.edrdg.org/edrdg/licence.html"
)

// Intent identifies a user intent the status panel can emit
type Intent int

const (
	IntentNone Intent = iota
	IntentRequestUpdate
	IntentCancel
	IntentDestroy
	IntentSetLanguage
)

// Intents is the capability set granted by the owning model. A nil func
// leaves the corresponding control rendered but inert. The panel forwards
// intents fire-and-forget and never inspects their effect.
type Intents struct {
	RequestUpdate func()
	Cancel        func()
	Destroy       func() // Reserved: forwarded, but no control triggers it yet
	SetLanguage   func(code string)
}

// ProgressSpec describes the progress indicator of one render
type ProgressSpec struct {
	Percent       float64 // 0-100 scale; meaningful only when !Indeterminate
	Indeterminate bool
}

// Action is a rendered control bound to an intent
type Action struct {
	Label   string
	Enabled bool
	Intent  Intent
}

// StatusView is the deterministic description of one render of the status
// panel. Building it has no side effects; identical inputs yield identical
// views.
type StatusView struct {
	StatusLine     string
	ErrorLine      string
	ShowSummary    bool
	ShowLangSelect bool
	Progress       *ProgressSpec
	Actions        []Action
}

// IsZero reports whether the view renders nothing
func (v StatusView) IsZero() bool {
	return v.StatusLine == "" && v.ErrorLine == "" && !v.ShowSummary &&
		!v.ShowLangSelect && v.Progress == nil && len(v.Actions) == 0
}

// BuildStatusView maps database readiness plus the update lifecycle snapshot
// to a view description. First match wins:
//
//  1. An initializing store renders the single initializing line, whatever
//     the update state says.
//  2. Otherwise the update state variant decides the branch.
//  3. An unrecognized variant (foreign or nil State) renders nothing.
func BuildStatusView(readiness dict.Readiness, versions map[dict.DataSetKind]dict.VersionInfo, state updater.State) StatusView {
	if readiness == dict.ReadinessInitializing {
		return StatusView{StatusLine: "Initializing…"}
	}

	_, installed := versions[dict.DataSetKanji]

	switch st := state.(type) {
	case updater.Idle:
		var status string
		switch {
		case readiness == dict.ReadinessEmpty:
			status = "No database"
		case st.LastCheck != nil:
			status = fmt.Sprintf("Up-to-date. Last check %s.", FormatTimestamp(*st.LastCheck))
		default:
			status = "Up-to-date."
		}
		return StatusView{
			StatusLine:     status,
			ShowSummary:    installed,
			ShowLangSelect: true,
			Actions: []Action{
				{Label: "Check for updates", Enabled: true, Intent: IntentRequestUpdate},
			},
		}

	case updater.Checking:
		return StatusView{
			StatusLine: "Checking for updates…",
			Actions: []Action{
				{Label: "Cancel", Enabled: true, Intent: IntentCancel},
			},
		}

	case updater.Downloading:
		percent := st.Progress * 100
		return StatusView{
			StatusLine: fmt.Sprintf("Downloading version %s (%d%%)",
				st.Version, int(math.Round(percent))),
			Progress: &ProgressSpec{Percent: percent},
			Actions: []Action{
				{Label: "Cancel", Enabled: true, Intent: IntentCancel},
			},
		}

	case updater.UpdatingDB:
		// Apply duration is unpredictable and the phase cannot be
		// cancelled, so: indeterminate indicator, disabled cancel.
		return StatusView{
			StatusLine: fmt.Sprintf("Updating database to version %s", st.Version),
			Progress:   &ProgressSpec{Indeterminate: true},
			Actions: []Action{
				{Label: "Cancel", Enabled: false, Intent: IntentCancel},
			},
		}

	case updater.Errored:
		return StatusView{
			ErrorLine:   fmt.Sprintf("Update failed: %s", st.Err.Error()),
			ShowSummary: installed,
			Actions: []Action{
				{Label: "Retry", Enabled: true, Intent: IntentRequestUpdate},
			},
		}

	default:
		return StatusView{}
	}
}

// SelectedLang returns the language the selector should preselect: the
// installed kanji data set's language, or the default when nothing is
// installed
func SelectedLang(versions map[dict.DataSetKind]dict.VersionInfo) string {
	if info, ok := versions[dict.DataSetKanji]; ok {
		return info.Lang
	}
	return dict.DefaultLang
}

// DBStatus is the database status panel. The owning model pushes fresh
// snapshots in; the panel keeps no state of its own beyond the spinner
// animation.
type DBStatus struct {
	readiness dict.Readiness
	versions  map[dict.DataSetKind]dict.VersionInfo
	state     updater.State
	intents   Intents

	spin  spinner.Model
	width int
}

// NewDBStatus creates the status panel with the given intent capabilities
func NewDBStatus(intents Intents) DBStatus {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Vermilion)

	return DBStatus{
		intents: intents,
		state:   updater.Idle{},
		spin:    s,
	}
}

// SetSnapshot replaces the rendered snapshot
func (c *DBStatus) SetSnapshot(readiness dict.Readiness, versions map[dict.DataSetKind]dict.VersionInfo, state updater.State) {
	c.readiness = readiness
	c.versions = versions
	c.state = state
}

// SetSize updates the component width
func (c *DBStatus) SetSize(width int) {
	c.width = width
}

// CurrentView returns the view description for the current snapshot
func (c DBStatus) CurrentView() StatusView {
	return BuildStatusView(c.readiness, c.versions, c.state)
}

// Invoke forwards the intent behind an action to its bound capability.
// Disabled actions and unbound capabilities are no-ops.
func (c DBStatus) Invoke(action Action) {
	if !action.Enabled {
		return
	}
	switch action.Intent {
	case IntentRequestUpdate:
		if c.intents.RequestUpdate != nil {
			c.intents.RequestUpdate()
		}
	case IntentCancel:
		if c.intents.Cancel != nil {
			c.intents.Cancel()
		}
	case IntentDestroy:
		if c.intents.Destroy != nil {
			c.intents.Destroy()
		}
	}
}

// EmitLanguage forwards a language selection to the owner
func (c DBStatus) EmitLanguage(code string) {
	if c.intents.SetLanguage != nil {
		c.intents.SetLanguage(code)
	}
}

// Init starts the spinner animation
func (c DBStatus) Init() tea.Cmd {
	return c.spin.Tick
}

// Update handles spinner ticks
func (c DBStatus) Update(msg tea.Msg) (DBStatus, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(tick)
		return c, cmd
	}
	return c, nil
}

// View renders the panel
func (c DBStatus) View() string {
	view := c.CurrentView()
	if view.IsZero() {
		return ""
	}

	width := c.width
	if width < 30 {
		width = 30
	}

	var lines []string

	if view.ShowSummary {
		lines = append(lines, c.renderSummary(width)...)
		lines = append(lines, "")
	}

	if view.StatusLine != "" {
		line := view.StatusLine
		if view.StatusLine == "Checking for updates…" || c.readiness == dict.ReadinessInitializing {
			line = c.spin.View() + " " + line
		}
		lines = append(lines, styles.TitleStyle.Render(line))
	}

	if view.ErrorLine != "" {
		lines = append(lines, styles.ErrorStyle.Render(view.ErrorLine))
	}

	if view.Progress != nil {
		if view.Progress.Indeterminate {
			lines = append(lines, c.spin.View()+" "+styles.DimStyle.Render("working…"))
		} else {
			lines = append(lines, styles.RenderProgressBar(view.Progress.Percent, width-4))
		}
	}

	if view.ShowLangSelect {
		code := SelectedLang(c.versions)
		name := dict.LanguageNames[code]
		lines = append(lines, "")
		lines = append(lines, styles.SubtitleStyle.Render(fmt.Sprintf("Language: %s (%s)", name, code))+
			styles.DimStyle.Render("  l to change"))
	}

	if len(view.Actions) > 0 {
		lines = append(lines, "")
		lines = append(lines, c.renderActions(view.Actions))
	}

	return strings.Join(lines, "\n")
}

// renderSummary renders the attribution block for the installed kanji set
func (c DBStatus) renderSummary(width int) []string {
	info := c.versions[dict.DataSetKanji]

	sentence := fmt.Sprintf(
		"Includes data from KANJIDIC version %s generated on %s.",
		info.DatabaseVersion, info.DateOfCreation)
	licence := "Copyright © Electronic Dictionary Research and Development Group, " +
		"used in conformance with the Group's licence."

	return []string{
		styles.SubtitleStyle.Render(styles.Truncate(sentence, width)),
		styles.DimStyle.Render(styles.Truncate(licence, width)),
		styles.DimStyle.Render("KANJIDIC: ") + styles.LinkStyle.Render(kanjidicWikiURL),
		styles.DimStyle.Render("EDRDG:    ") + styles.LinkStyle.Render(edrdgHomeURL),
		styles.DimStyle.Render("Licence:  ") + styles.LinkStyle.Render(edrdgLicenceURL),
	}
}

// renderActions renders the footer controls
func (c DBStatus) renderActions(actions []Action) string {
	parts := make([]string, len(actions))
	for i, action := range actions {
		if action.Enabled {
			parts[i] = styles.ActionStyle.Render(action.Label)
		} else {
			parts[i] = styles.DisabledActionStyle.Render(action.Label)
		}
	}
	return strings.Join(parts, " ")
}
