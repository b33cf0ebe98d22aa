package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hokuto/jiten/internal/dict"
	"github.com/hokuto/jiten/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the results list
const (
	resultsBorderHeight = 2
	resultsHeaderLines  = 2
)

// ResultsList shows kanji lookup results with the selected entry expanded
type ResultsList struct {
	entries []dict.KanjiEntry
	query   string
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// NewResultsList creates an empty results list
func NewResultsList() ResultsList {
	return ResultsList{focused: true}
}

// SetResults replaces the listed entries. query is kept for match
// highlighting.
func (c *ResultsList) SetResults(entries []dict.KanjiEntry, query string) {
	c.entries = entries
	c.query = query
	c.cursor = 0
	c.offset = 0
}

// SetSize updates the component dimensions
func (c *ResultsList) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetFocused sets the focus state
func (c *ResultsList) SetFocused(focused bool) {
	c.focused = focused
}

// Selected returns the entry under the cursor
func (c ResultsList) Selected() *dict.KanjiEntry {
	if c.cursor < 0 || c.cursor >= len(c.entries) {
		return nil
	}
	return &c.entries[c.cursor]
}

// Len returns the number of listed entries
func (c ResultsList) Len() int {
	return len(c.entries)
}

// HandleKey processes navigation keys, returns whether the key was consumed
func (c *ResultsList) HandleKey(key string) bool {
	if !c.focused || len(c.entries) == 0 {
		return false
	}

	switch key {
	case "j", "down":
		if c.cursor < len(c.entries)-1 {
			c.cursor++
		}
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
		}
	case "g", "home":
		c.cursor = 0
	case "G", "end":
		c.cursor = len(c.entries) - 1
	default:
		return false
	}

	c.clampOffset()
	return true
}

func (c *ResultsList) clampOffset() {
	visible := c.visibleRows()
	if visible < 1 {
		visible = 1
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}
}

func (c ResultsList) visibleRows() int {
	return c.height - resultsBorderHeight - resultsHeaderLines
}

// View renders the results list
func (c ResultsList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	contentWidth := c.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	var lines []string
	lines = append(lines, styles.AccentStyle.Render(
		fmt.Sprintf("Results (%d)", len(c.entries))))
	lines = append(lines, "")

	visible := c.visibleRows()
	if visible < 1 {
		visible = 1
	}
	end := c.offset + visible
	if end > len(c.entries) {
		end = len(c.entries)
	}

	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(i, contentWidth))
	}

	if len(c.entries) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matches"))
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(strings.Join(lines, "\n"))
}

// renderRow renders one list row with gloss match highlighting
func (c ResultsList) renderRow(i, width int) string {
	entry := c.entries[i]
	selected := i == c.cursor

	gloss := strings.Join(entry.Meanings, ", ")
	readings := formatReadings(entry)

	glossPart := gloss
	if c.query != "" && !selected {
		glossPart = highlightMatches(gloss, c.query)
	}

	row := entry.Literal + "  " + glossPart
	if readings != "" {
		row += "  " + styles.DimStyle.Render(readings)
	}

	if selected {
		plain := entry.Literal + "  " + gloss
		if readings != "" {
			plain += "  " + readings
		}
		return styles.SelectedItemStyle.Render(styles.Truncate(plain, width-2))
	}
	return styles.NormalItemStyle.Render(row)
}

// formatReadings joins on/kun readings for a compact row suffix
func formatReadings(entry dict.KanjiEntry) string {
	switch {
	case len(entry.OnReadings) > 0 && len(entry.KunReadings) > 0:
		return strings.Join(entry.OnReadings, ", ") + " / " + strings.Join(entry.KunReadings, ", ")
	case len(entry.OnReadings) > 0:
		return strings.Join(entry.OnReadings, ", ")
	case len(entry.KunReadings) > 0:
		return strings.Join(entry.KunReadings, ", ")
	default:
		return ""
	}
}

// highlightMatches bolds the runes of text that fuzzy-match the query
func highlightMatches(text, query string) string {
	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(text)})
	if len(matches) == 0 {
		return text
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range []rune(text) {
		if matched[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.LightGray).Render(string(r)))
		}
	}
	return b.String()
}
