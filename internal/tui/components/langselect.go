package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hokuto/jiten/internal/tui/styles"
)

// LangOption is one selectable gloss language
type LangOption struct {
	Code string
	Name string
}

// LangSelect is a small popup for choosing the data set language. The
// selection it shows always comes from the owner; confirming a different
// code emits it once and the owner re-renders with updated version info.
type LangSelect struct {
	visible    bool
	options    []LangOption
	cursor     int
	activeCode string
}

// NewLangSelect creates a new language selector
func NewLangSelect() LangSelect {
	return LangSelect{}
}

// Show displays the modal. codes gives the display order; names must cover
// every code in it.
func (m *LangSelect) Show(codes []string, names map[string]string, activeCode string) {
	m.visible = true
	m.activeCode = activeCode
	m.options = make([]LangOption, len(codes))
	m.cursor = 0
	for i, code := range codes {
		m.options[i] = LangOption{Code: code, Name: names[code]}
		if code == activeCode {
			m.cursor = i
		}
	}
}

// Hide dismisses the modal
func (m *LangSelect) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m LangSelect) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// selection is non-nil only when the user confirmed a code different from
// the active one.
func (m *LangSelect) HandleKey(key string) (handled bool, selection *LangOption) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		if chosen.Code == m.activeCode {
			// Re-confirming the current language is not a change
			return true, nil
		}
		return true, &chosen
	case "esc", "l":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the language modal
func (m LangSelect) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := opt.Code == m.activeCode

		var prefix string
		if isActive {
			prefix = "✓ "
		} else {
			prefix = "  "
		}

		text := prefix + opt.Name + " (" + opt.Code + ")"

		if selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(text, 24)))
		} else if isActive {
			lines = append(lines, styles.AccentStyle.Render(styles.Pad(text, 24)))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(text, 24)))
		}
	}

	content := strings.Join(lines, "\n")

	return styles.ModalStyle.Render(
		styles.ModalTitleStyle.Render("Language") + "\n" + content)
}
