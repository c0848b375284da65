package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CookieConsent mirrors the consent record the dashboard kept in the
// browser.
type CookieConsent struct {
	Accepted   bool      `json:"accepted"`
	Functional bool      `json:"functional"`
	Analytics  bool      `json:"analytics"`
	Timestamp  time.Time `json:"timestamp"`
}

type ActiveJob struct {
	JobID   string `json:"job_id"`
	IssueID string `json:"issue_id"`
	ScanID  string `json:"scan_id"`
}

type state struct {
	AccessToken           string         `json:"access_token,omitempty"`
	CookieConsent         *CookieConsent `json:"cookie_consent,omitempty"`
	LockedOptimizationURL string         `json:"locked_optimization_url,omitempty"`
	OptimizationMode      string         `json:"optimization_mode,omitempty"`
	DisclaimerAccepted    bool           `json:"disclaimer_accepted"`
	ActiveJobs            []ActiveJob    `json:"active_jobs,omitempty"`
}

// Store is the client-side application state: tokens, consent, the
// optimization lock and the list of fix jobs in flight. It has an explicit
// lifecycle (New at startup, Reset at logout) instead of living in a
// package-level singleton, and persists itself to a single JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	s    state
}

func New(path string) (*Store, error) {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(data, &store.s); err != nil {
		// a corrupt session file starts over rather than blocking login
		store.s = state{}
	}
	return store, nil
}

func (st *Store) save() error {
	data, err := json.MarshalIndent(st.s, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(st.path, data, 0o600)
}

func (st *Store) AccessToken() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s.AccessToken
}

func (st *Store) SetAccessToken(token string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.AccessToken = token
	return st.save()
}

func (st *Store) CookieConsent() *CookieConsent {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s.CookieConsent
}

func (st *Store) SetCookieConsent(consent CookieConsent) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	consent.Timestamp = time.Now()
	st.s.CookieConsent = &consent
	return st.save()
}

func (st *Store) OptimizationLock() (url, mode string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s.LockedOptimizationURL, st.s.OptimizationMode
}

func (st *Store) SetOptimizationLock(url, mode string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.LockedOptimizationURL = url
	st.s.OptimizationMode = mode
	return st.save()
}

// DisclaimerAccepted reports whether the user already acknowledged the
// liability disclaimer; the first fix requires it.
func (st *Store) DisclaimerAccepted() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s.DisclaimerAccepted
}

func (st *Store) SetDisclaimerAccepted() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.DisclaimerAccepted = true
	return st.save()
}

// AppendActiveJob records a just-submitted job. The list is append-only
// during submission; RemoveActiveJob filters by job id once a job reaches
// a terminal state.
func (st *Store) AppendActiveJob(job ActiveJob) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ActiveJobs = append(st.s.ActiveJobs, job)
	return st.save()
}

func (st *Store) RemoveActiveJob(jobID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	jobs := st.s.ActiveJobs[:0]
	for _, job := range st.s.ActiveJobs {
		if job.JobID != jobID {
			jobs = append(jobs, job)
		}
	}
	st.s.ActiveJobs = jobs
	return st.save()
}

func (st *Store) ActiveJobs() []ActiveJob {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]ActiveJob, len(st.s.ActiveJobs))
	copy(out, st.s.ActiveJobs)
	return out
}

// Reset clears everything, the logout path.
func (st *Store) Reset() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = state{}
	return st.save()
}
