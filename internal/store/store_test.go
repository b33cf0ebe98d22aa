package store

import (
	"testing"
	"time"

	"github.com/hokuto/jiten/internal/dict"
	"github.com/stretchr/testify/require"
)

func testEntries() []dict.KanjiEntry {
	return []dict.KanjiEntry{
		{Literal: "日", Meanings: []string{"day", "sun"}, OnReadings: []string{"ニチ", "ジツ"}, KunReadings: []string{"ひ"}, StrokeCount: 4},
		{Literal: "月", Meanings: []string{"month", "moon"}, OnReadings: []string{"ゲツ", "ガツ"}, KunReadings: []string{"つき"}, StrokeCount: 4},
		{Literal: "火", Meanings: []string{"fire"}, OnReadings: []string{"カ"}, KunReadings: []string{"ひ"}, StrokeCount: 4},
	}
}

func testVersion() dict.VersionInfo {
	return dict.VersionInfo{
		VersionTriple:   dict.VersionTriple{Major: 4, Minor: 1, Patch: 0},
		DatabaseVersion: "2024-176",
		DateOfCreation:  "2024-06-24",
		Lang:            "en",
	}
}

func TestStore_EmptyUntilVersionRecorded(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, dict.ReadinessEmpty, s.Readiness())
	_, ok := s.Version(dict.DataSetKanji)
	require.False(t, ok)
	require.Empty(t, s.Versions())
}

func TestStore_ReplaceKanji(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ReplaceKanji(testEntries(), testVersion()))

	require.Equal(t, dict.ReadinessReady, s.Readiness())
	require.Equal(t, 3, s.CountKanji())

	entry, err := s.GetKanji("日")
	require.NoError(t, err)
	require.Equal(t, []string{"day", "sun"}, entry.Meanings)

	info, ok := s.Version(dict.DataSetKanji)
	require.True(t, ok)
	require.Equal(t, testVersion(), info)

	all, err := s.AllKanji()
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestStore_ReplaceKanjiSwapsSnapshot(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ReplaceKanji(testEntries(), testVersion()))

	next := testVersion()
	next.Patch = 1
	require.NoError(t, s.ReplaceKanji([]dict.KanjiEntry{
		{Literal: "水", Meanings: []string{"water"}},
	}, next))

	// Old entries are gone, not merged
	require.Equal(t, 1, s.CountKanji())
	_, err = s.GetKanji("日")
	require.ErrorIs(t, err, dict.ErrNotFound)

	info, ok := s.Version(dict.DataSetKanji)
	require.True(t, ok)
	require.Equal(t, 1, info.Patch)
}

func TestStore_GetKanjiNotFound(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetKanji("日")
	require.ErrorIs(t, err, dict.ErrNotFound)
}

func TestStore_LastCheckRoundtrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.LastCheck()
	require.False(t, ok)

	now := time.Now().Truncate(time.Second)
	require.NoError(t, s.SaveLastCheck(now))

	got, ok := s.LastCheck()
	require.True(t, ok)
	require.True(t, got.Equal(now))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceKanji(testEntries(), testVersion()))
	require.NoError(t, s.SaveLastCheck(time.Unix(1700000000, 0)))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	require.Equal(t, dict.ReadinessReady, s2.Readiness())
	require.Equal(t, 3, s2.CountKanji())

	got, ok := s2.LastCheck()
	require.True(t, ok)
	require.Equal(t, int64(1700000000), got.Unix())
}

func TestStore_Destroy(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ReplaceKanji(testEntries(), testVersion()))
	require.NoError(t, s.Destroy())

	require.Equal(t, dict.ReadinessEmpty, s.Readiness())
	require.Equal(t, 0, s.CountKanji())
	_, ok := s.LastCheck()
	require.False(t, ok)
}

func TestStore_MemoryOnlyMode(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, dict.ReadinessEmpty, s.Readiness())

	// Version metadata lives in the memory cache
	require.NoError(t, s.SaveVersion(dict.DataSetKanji, testVersion()))
	require.Equal(t, dict.ReadinessReady, s.Readiness())
}
