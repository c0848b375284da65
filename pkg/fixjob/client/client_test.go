package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpclient"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

func TestCreateJob(t *testing.T) {
	var received api.CreateJobRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/fix-jobs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.CreateJobResponse{JobID: "j1", Status: types.FixJobPending})
	}))
	defer server.Close()

	c := NewFixJobServiceClient(server.URL)
	issue := types.ComplianceIssue{ID: "i1", Category: "cookies", Title: "Cookie-Banner fehlt", AutoFixable: true}

	resp, err := c.CreateJob(&httpclient.Context{BearerToken: "tok"}, "s1", issue)
	require.NoError(t, err)
	assert.Equal(t, "j1", resp.JobID)
	assert.Equal(t, types.FixJobPending, resp.Status)

	assert.Equal(t, "s1", received.ScanID)
	assert.Equal(t, "i1", received.IssueID)
	assert.Equal(t, "Cookie-Banner fehlt", received.IssueData.Title)
}

func TestCreateJobQuotaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(api.QuotaExceededResponse{
			Code:   api.ErrCodeFixLimitReached,
			Detail: api.QuotaDetail{FixesUsed: 3, FixesLimit: 3},
		})
	}))
	defer server.Close()

	c := NewFixJobServiceClient(server.URL)
	_, err := c.CreateJob(&httpclient.Context{}, "s1", types.ComplianceIssue{ID: "i1"})

	var quota *QuotaError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 3, quota.FixesUsed)
	assert.Equal(t, 3, quota.FixesLimit)
}

func TestCreateJobQuotaErrorDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewFixJobServiceClient(server.URL)
	_, err := c.CreateJob(&httpclient.Context{}, "s1", types.ComplianceIssue{ID: "i1"})

	var quota *QuotaError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 1, quota.FixesUsed)
	assert.Equal(t, 1, quota.FixesLimit)
}

func TestCreateJobGenericError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database down"}`))
	}))
	defer server.Close()

	c := NewFixJobServiceClient(server.URL)
	_, err := c.CreateJob(&httpclient.Context{}, "s1", types.ComplianceIssue{ID: "i1"})

	require.Error(t, err)
	var quota *QuotaError
	assert.False(t, errors.As(err, &quota), "a 500 must not be classified as quota")
	assert.Contains(t, err.Error(), "database down")
}

func TestGetJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/fix-jobs/j1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.JobStatusResponse{
			JobID:           "j1",
			Status:          types.FixJobProcessing,
			ProgressPercent: 50,
			CurrentStep:     "Lösung wird generiert…",
		})
	}))
	defer server.Close()

	c := NewFixJobServiceClient(server.URL)
	resp, err := c.GetJob(&httpclient.Context{}, "j1")
	require.NoError(t, err)
	assert.Equal(t, types.FixJobProcessing, resp.Status)
	assert.Equal(t, 50, resp.ProgressPercent)
}

func TestGetJobAbortsOnContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewFixJobServiceClient(server.URL)

	done := make(chan error, 1)
	go func() {
		_, err := c.GetJob(&httpclient.Context{Ctx: ctx}, "j1")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("request kept running after context cancellation")
	}
}

func TestListDomainLocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/domain-locks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.DomainLocksResponse{
			Success: true,
			DomainLocks: []types.DomainLock{
				{Domain: "example.de", FixesUsed: 1, FixesLimit: 1},
			},
		})
	}))
	defer server.Close()

	c := NewFixJobServiceClient(server.URL)
	locks, err := c.ListDomainLocks(&httpclient.Context{})
	require.NoError(t, err)
	require.Len(t, locks, 1)
	assert.True(t, locks[0].QuotaExhausted())
}
