package components

import (
	"errors"
	"testing"
	"time"

	"github.com/hokuto/jiten/internal/dict"
	"github.com/hokuto/jiten/internal/updater"
	"github.com/stretchr/testify/require"
)

func installedVersions() map[dict.DataSetKind]dict.VersionInfo {
	return map[dict.DataSetKind]dict.VersionInfo{
		dict.DataSetKanji: {
			VersionTriple:   dict.VersionTriple{Major: 4, Minor: 1, Patch: 0},
			DatabaseVersion: "2024-176",
			DateOfCreation:  "2024-06-24",
			Lang:            "fr",
		},
	}
}

func findAction(t *testing.T, view StatusView, intent Intent) Action {
	t.Helper()
	for _, action := range view.Actions {
		if action.Intent == intent {
			return action
		}
	}
	t.Fatalf("no action with intent %v in %+v", intent, view.Actions)
	return Action{}
}

func TestBuildStatusView_InitializingWinsOverEverything(t *testing.T) {
	states := []updater.State{
		updater.Idle{},
		updater.Checking{},
		updater.Downloading{Version: dict.VersionTriple{Major: 1, Minor: 2, Patch: 3}, Progress: 0.5},
		updater.UpdatingDB{Version: dict.VersionTriple{Major: 1, Minor: 2, Patch: 3}},
		updater.Errored{Err: errors.New("boom")},
		nil, // malformed snapshot
	}

	for _, state := range states {
		view := BuildStatusView(dict.ReadinessInitializing, installedVersions(), state)
		require.Equal(t, "Initializing…", view.StatusLine)
		require.False(t, view.ShowSummary)
		require.False(t, view.ShowLangSelect)
		require.Nil(t, view.Progress)
		require.Empty(t, view.Actions)
	}
}

func TestBuildStatusView_IdleEmptyDatabase(t *testing.T) {
	view := BuildStatusView(dict.ReadinessEmpty, nil, updater.Idle{})

	require.Equal(t, "No database", view.StatusLine)
	require.False(t, view.ShowSummary)
	require.True(t, view.ShowLangSelect)

	action := findAction(t, view, IntentRequestUpdate)
	require.Equal(t, "Check for updates", action.Label)
	require.True(t, action.Enabled)
}

func TestBuildStatusView_IdleWithLastCheck(t *testing.T) {
	lastCheck := time.Date(2024, 3, 5, 8, 7, 0, 0, time.Local)
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), updater.Idle{LastCheck: &lastCheck})

	require.Equal(t, "Up-to-date. Last check 2024-03-05 08:07.", view.StatusLine)
	require.True(t, view.ShowSummary)
	require.True(t, view.ShowLangSelect)
}

func TestBuildStatusView_IdleWithoutLastCheck(t *testing.T) {
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), updater.Idle{})
	require.Equal(t, "Up-to-date.", view.StatusLine)
}

func TestBuildStatusView_Checking(t *testing.T) {
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), updater.Checking{})

	require.Equal(t, "Checking for updates…", view.StatusLine)
	require.False(t, view.ShowSummary)
	require.False(t, view.ShowLangSelect)

	action := findAction(t, view, IntentCancel)
	require.Equal(t, "Cancel", action.Label)
	require.True(t, action.Enabled)
}

func TestBuildStatusView_Downloading(t *testing.T) {
	state := updater.Downloading{
		Version:  dict.VersionTriple{Major: 1, Minor: 2, Patch: 3},
		Progress: 0.4567,
	}
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), state)

	// 46 comes from rounding 45.67; the indicator keeps the fraction
	require.Equal(t, "Downloading version 1.2.3 (46%)", view.StatusLine)
	require.NotNil(t, view.Progress)
	require.False(t, view.Progress.Indeterminate)
	require.InDelta(t, 45.67, view.Progress.Percent, 1e-9)

	action := findAction(t, view, IntentCancel)
	require.True(t, action.Enabled)
	require.False(t, view.ShowSummary)
}

func TestBuildStatusView_DownloadingRounding(t *testing.T) {
	cases := []struct {
		progress float64
		want     string
	}{
		{0, "Downloading version 0.1.0 (0%)"},
		{0.125, "Downloading version 0.1.0 (13%)"}, // half away from zero
		{0.5, "Downloading version 0.1.0 (50%)"},
		{0.999, "Downloading version 0.1.0 (100%)"},
		{1, "Downloading version 0.1.0 (100%)"},
	}

	for _, tc := range cases {
		state := updater.Downloading{
			Version:  dict.VersionTriple{Minor: 1},
			Progress: tc.progress,
		}
		view := BuildStatusView(dict.ReadinessReady, nil, state)
		require.Equal(t, tc.want, view.StatusLine, "progress %v", tc.progress)
	}
}

func TestBuildStatusView_UpdatingDB(t *testing.T) {
	state := updater.UpdatingDB{Version: dict.VersionTriple{Major: 1, Minor: 2, Patch: 3}}
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), state)

	require.Equal(t, "Updating database to version 1.2.3", view.StatusLine)
	require.NotNil(t, view.Progress)
	require.True(t, view.Progress.Indeterminate)

	// Cancel stays visible but must not be actionable during the apply
	action := findAction(t, view, IntentCancel)
	require.False(t, action.Enabled)
	require.False(t, view.ShowSummary)
}

func TestBuildStatusView_Errored(t *testing.T) {
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), updater.Errored{Err: errors.New("network timeout")})

	require.Equal(t, "Update failed: network timeout", view.ErrorLine)
	require.Empty(t, view.StatusLine)
	require.True(t, view.ShowSummary)

	// Retry and a fresh check are the same intent
	action := findAction(t, view, IntentRequestUpdate)
	require.Equal(t, "Retry", action.Label)
	require.True(t, action.Enabled)
}

func TestBuildStatusView_ErroredWithoutInstall(t *testing.T) {
	view := BuildStatusView(dict.ReadinessEmpty, nil, updater.Errored{Err: errors.New("boom")})
	require.False(t, view.ShowSummary)
}

func TestBuildStatusView_UnknownVariantRendersNothing(t *testing.T) {
	view := BuildStatusView(dict.ReadinessReady, installedVersions(), nil)
	require.True(t, view.IsZero())
}

func TestBuildStatusView_Idempotent(t *testing.T) {
	lastCheck := time.Date(2024, 3, 5, 8, 7, 0, 0, time.Local)
	states := []updater.State{
		updater.Idle{LastCheck: &lastCheck},
		updater.Checking{},
		updater.Downloading{Version: dict.VersionTriple{Major: 1}, Progress: 0.25},
		updater.UpdatingDB{Version: dict.VersionTriple{Major: 1}},
		updater.Errored{Err: errors.New("boom")},
	}

	for _, state := range states {
		first := BuildStatusView(dict.ReadinessReady, installedVersions(), state)
		second := BuildStatusView(dict.ReadinessReady, installedVersions(), state)
		require.Equal(t, first, second)
	}
}

func TestBuildStatusView_SummaryOnlyInIdleAndError(t *testing.T) {
	versions := installedVersions()
	cases := []struct {
		name  string
		state updater.State
		want  bool
	}{
		{"idle", updater.Idle{}, true},
		{"error", updater.Errored{Err: errors.New("x")}, true},
		{"checking", updater.Checking{}, false},
		{"downloading", updater.Downloading{Progress: 0.1}, false},
		{"updatingdb", updater.UpdatingDB{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := BuildStatusView(dict.ReadinessReady, versions, tc.state)
			require.Equal(t, tc.want, view.ShowSummary)
		})
	}
}

func TestSelectedLang(t *testing.T) {
	require.Equal(t, "fr", SelectedLang(installedVersions()))
	require.Equal(t, "en", SelectedLang(nil))
	require.Equal(t, "en", SelectedLang(map[dict.DataSetKind]dict.VersionInfo{}))
}

func TestDBStatus_InvokeDispatch(t *testing.T) {
	var requested, cancelled int
	var gotLang string

	panel := NewDBStatus(Intents{
		RequestUpdate: func() { requested++ },
		Cancel:        func() { cancelled++ },
		SetLanguage:   func(code string) { gotLang = code },
	})

	panel.Invoke(Action{Enabled: true, Intent: IntentRequestUpdate})
	require.Equal(t, 1, requested)

	panel.Invoke(Action{Enabled: true, Intent: IntentCancel})
	require.Equal(t, 1, cancelled)

	// Disabled actions are no-ops
	panel.Invoke(Action{Enabled: false, Intent: IntentRequestUpdate})
	require.Equal(t, 1, requested)

	panel.EmitLanguage("de")
	require.Equal(t, "de", gotLang)
}

func TestDBStatus_NilIntentsAreInert(t *testing.T) {
	panel := NewDBStatus(Intents{})

	require.NotPanics(t, func() {
		panel.Invoke(Action{Enabled: true, Intent: IntentRequestUpdate})
		panel.Invoke(Action{Enabled: true, Intent: IntentCancel})
		panel.Invoke(Action{Enabled: true, Intent: IntentDestroy})
		panel.EmitLanguage("en")
	})
}

func TestDBStatus_ViewRendersSnapshot(t *testing.T) {
	panel := NewDBStatus(Intents{})
	panel.SetSize(80)
	panel.SetSnapshot(dict.ReadinessReady, installedVersions(), updater.Errored{Err: errors.New("network timeout")})

	out := panel.View()
	require.Contains(t, out, "Update failed: network timeout")
	require.Contains(t, out, "KANJIDIC version 2024-176")
	require.Contains(t, out, "generated on 2024-06-24")
	require.Contains(t, out, "Retry")
}

func TestDBStatus_ViewUnknownVariantIsEmpty(t *testing.T) {
	panel := NewDBStatus(Intents{})
	panel.SetSnapshot(dict.ReadinessReady, installedVersions(), nil)
	require.Empty(t, panel.View())
}
