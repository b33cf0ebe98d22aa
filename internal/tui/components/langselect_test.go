package components

import (
	"testing"

	"github.com/hokuto/jiten/internal/dict"
	"github.com/stretchr/testify/require"
)

func TestLangSelect_PreselectsActiveCode(t *testing.T) {
	m := NewLangSelect()
	m.Show(dict.LanguageCodes, dict.LanguageNames, "fr")

	require.True(t, m.IsVisible())

	// Confirming without moving re-selects the active code: no change
	handled, selection := m.HandleKey("enter")
	require.True(t, handled)
	require.Nil(t, selection)
	require.False(t, m.IsVisible())
}

func TestLangSelect_EmitsChosenCodeOnce(t *testing.T) {
	m := NewLangSelect()
	m.Show([]string{"en", "de", "es"}, dict.LanguageNames, "en")

	m.HandleKey("j")
	handled, selection := m.HandleKey("enter")
	require.True(t, handled)
	require.NotNil(t, selection)
	require.Equal(t, "de", selection.Code)
	require.Equal(t, "Deutsch", selection.Name)
	require.False(t, m.IsVisible())
}

func TestLangSelect_DefaultsToEnglishWhenNothingInstalled(t *testing.T) {
	m := NewLangSelect()
	m.Show(dict.LanguageCodes, dict.LanguageNames, SelectedLang(nil))

	handled, selection := m.HandleKey("enter")
	require.True(t, handled)
	require.Nil(t, selection) // "en" was already active
}

func TestLangSelect_EscapeSelectsNothing(t *testing.T) {
	m := NewLangSelect()
	m.Show(dict.LanguageCodes, dict.LanguageNames, "en")

	m.HandleKey("j")
	handled, selection := m.HandleKey("esc")
	require.True(t, handled)
	require.Nil(t, selection)
	require.False(t, m.IsVisible())
}

func TestLangSelect_IgnoresKeysWhenHidden(t *testing.T) {
	m := NewLangSelect()
	handled, selection := m.HandleKey("enter")
	require.False(t, handled)
	require.Nil(t, selection)
}

func TestLangSelect_CursorStaysInBounds(t *testing.T) {
	m := NewLangSelect()
	m.Show([]string{"en", "de"}, dict.LanguageNames, "en")

	m.HandleKey("k") // already at top
	m.HandleKey("j")
	m.HandleKey("j") // already at bottom
	handled, selection := m.HandleKey("enter")
	require.True(t, handled)
	require.NotNil(t, selection)
	require.Equal(t, "de", selection.Code)
}
