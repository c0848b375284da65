package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.SetAccessToken("tok-123"))
	require.NoError(t, store.SetDisclaimerAccepted())
	require.NoError(t, store.SetOptimizationLock("https://example.de", "expert"))
	require.NoError(t, store.SetCookieConsent(CookieConsent{Accepted: true, Functional: true}))

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reloaded.AccessToken())
	assert.True(t, reloaded.DisclaimerAccepted())

	url, mode := reloaded.OptimizationLock()
	assert.Equal(t, "https://example.de", url)
	assert.Equal(t, "expert", mode)

	consent := reloaded.CookieConsent()
	require.NotNil(t, consent)
	assert.True(t, consent.Accepted)
	assert.False(t, consent.Analytics)
	assert.False(t, consent.Timestamp.IsZero())
}

func TestStoreActiveJobs(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	require.NoError(t, store.AppendActiveJob(ActiveJob{JobID: "j1", IssueID: "i1"}))
	require.NoError(t, store.AppendActiveJob(ActiveJob{JobID: "j2", IssueID: "i2"}))
	assert.Len(t, store.ActiveJobs(), 2)

	require.NoError(t, store.RemoveActiveJob("j1"))
	jobs := store.ActiveJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "j2", jobs[0].JobID)
}

func TestStoreReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.SetAccessToken("tok"))
	require.NoError(t, store.Reset())

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.AccessToken())
	assert.False(t, reloaded.DisclaimerAccepted())
}

func TestStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := New(path)
	require.NoError(t, err)
	assert.Empty(t, store.AccessToken())
}
