package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func TestMemory(t *testing.T) {
	s := NewMemory()

	_, ok := s.GetString("missing")
	require.False(t, ok)

	s.SetString("k", "v")
	v, ok := s.GetString("k")
	require.True(t, ok)
	require.Equal(t, "v", v)

	s.SetStringSet("set", map[string]bool{"a": true, "b": true, "c": false})
	require.Equal(t, map[string]bool{"a": true, "b": true}, s.GetStringSet("set"))

	s.Remove("k")
	s.Remove("set")

	_, ok = s.GetString("k")
	require.False(t, ok)
	require.Empty(t, s.GetStringSet("set"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := OpenFile(testLogger(), path)
	require.NoError(t, err)

	s.SetString("k", "v")
	s.SetStringSet("set", map[string]bool{"b": true, "a": true})

	// A fresh open sees everything the first instance wrote.
	reopened, err := OpenFile(testLogger(), path)
	require.NoError(t, err)

	v, ok := reopened.GetString("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
	require.Equal(t, map[string]bool{"a": true, "b": true}, reopened.GetStringSet("set"))

	reopened.Remove("k")

	again, err := OpenFile(testLogger(), path)
	require.NoError(t, err)

	_, ok = again.GetString("k")
	require.False(t, ok)
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := OpenFile(testLogger(), path)
	require.NoError(t, err)

	_, ok := s.GetString("anything")
	require.False(t, ok)
}

func TestFileStore_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := OpenFile(testLogger(), path)
	require.Error(t, err)
}

func TestCredentials(t *testing.T) {
	s := NewMemory()

	_, _, _, ok := Credentials(s)
	require.False(t, ok)

	SaveCredentials(s, "http://panel.example", "user", "secret")

	baseURL, username, password, ok := Credentials(s)
	require.True(t, ok)
	require.Equal(t, "http://panel.example", baseURL)
	require.Equal(t, "user", username)
	require.Equal(t, "secret", password)

	SaveCredentials(s, "http://panel.example", "user", "")
	_, _, _, ok = Credentials(s)
	require.False(t, ok)

	ClearCredentials(s)
	_, _, _, ok = Credentials(s)
	require.False(t, ok)
}

func TestRecents_MoveToFront(t *testing.T) {
	s := NewMemory()

	AddRecent(s, 1)
	AddRecent(s, 3)
	AddRecent(s, 5)
	require.Equal(t, []int{5, 3, 1}, RecentIDs(s))

	AddRecent(s, 5)
	require.Equal(t, []int{5, 3, 1}, RecentIDs(s))

	AddRecent(s, 3)
	require.Equal(t, []int{3, 5, 1}, RecentIDs(s))
}

func TestRecents_EvictsOldest(t *testing.T) {
	s := NewMemory()

	for id := 1; id <= 20; id++ {
		AddRecent(s, id)
	}

	AddRecent(s, 21)

	ids := RecentIDs(s)
	require.Len(t, ids, 20)
	require.Equal(t, 21, ids[0])
	require.NotContains(t, ids, 1)
}

func TestRecents_SkipsGarbage(t *testing.T) {
	s := NewMemory()
	s.SetString("recent_streams", "5,abc, 3 ,")

	require.Equal(t, []int{5, 3}, RecentIDs(s))
}

func TestRecents_PersistedFormat(t *testing.T) {
	s := NewMemory()

	AddRecent(s, 1)
	AddRecent(s, 2)

	raw, ok := s.GetString("recent_streams")
	require.True(t, ok)
	require.Equal(t, "2,1", raw)
}
