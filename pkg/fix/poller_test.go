package fix

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

func TestPollStopsAtTerminalState(t *testing.T) {
	jobs := &fakeJobClient{getResponses: []*api.JobStatusResponse{
		{JobID: "j1", Status: types.FixJobPending},
		{JobID: "j1", Status: types.FixJobProcessing, ProgressPercent: 50, CurrentStep: "Lösung wird generiert…"},
		{JobID: "j1", Status: types.FixJobCompleted, Result: json.RawMessage(`{"type":"code","content":"<script></script>"}`)},
	}}
	poller := NewPoller(zap.NewNop(), jobs, time.Millisecond, time.Second)

	var snapshots []Snapshot
	resp, err := poller.Poll(context.Background(), nil, "j1", func(snap Snapshot) {
		snapshots = append(snapshots, snap)
	})
	require.NoError(t, err)
	assert.Equal(t, types.FixJobCompleted, resp.Status)

	assert.Equal(t, 3, jobs.getCalls, "no poll may happen after the first terminal response")
	require.Len(t, snapshots, 3)
}

func TestPollPendingDefaults(t *testing.T) {
	jobs := &fakeJobClient{getResponses: []*api.JobStatusResponse{
		{JobID: "j1", Status: types.FixJobPending},
		{JobID: "j1", Status: types.FixJobFailed, ErrorMessage: "model unavailable"},
	}}
	poller := NewPoller(zap.NewNop(), jobs, time.Millisecond, time.Second)

	var first Snapshot
	var got bool
	resp, err := poller.Poll(context.Background(), nil, "j1", func(snap Snapshot) {
		if !got {
			first = snap
			got = true
		}
	})
	require.NoError(t, err)
	assert.Equal(t, types.FixJobFailed, resp.Status)

	assert.Equal(t, 10, first.ProgressPercent)
	assert.Equal(t, "KI analysiert Problem…", first.CurrentStep)
}

func TestPollDeadline(t *testing.T) {
	jobs := &fakeJobClient{getResponses: []*api.JobStatusResponse{
		{JobID: "j1", Status: types.FixJobPending},
	}}
	poller := NewPoller(zap.NewNop(), jobs, 5*time.Millisecond, 30*time.Millisecond)

	_, err := poller.Poll(context.Background(), nil, "j1", nil)
	assert.ErrorIs(t, err, ErrPollDeadline)
}

func TestPollStopsOnCancel(t *testing.T) {
	jobs := &fakeJobClient{getResponses: []*api.JobStatusResponse{
		{JobID: "j1", Status: types.FixJobPending},
	}}
	poller := NewPoller(zap.NewNop(), jobs, 5*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(15 * time.Millisecond)
		cancel()
	}()

	_, err := poller.Poll(ctx, nil, "j1", nil)
	assert.ErrorIs(t, err, context.Canceled)

	calls := jobs.getCalls
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, jobs.getCalls, "cancelled poller must issue no further requests")
}
