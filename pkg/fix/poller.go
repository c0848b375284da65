package fix

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/client"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpclient"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollDeadline = 5 * time.Minute

	pendingStep     = "KI analysiert Problem…"
	pendingProgress = 10
)

// ErrPollDeadline means the job did not reach a terminal state within the
// deadline. The job may still finish on the backend; the client just stops
// waiting ("taking longer than expected").
var ErrPollDeadline = errors.New("Die Bearbeitung dauert länger als erwartet")

// Snapshot is what the presentation layer sees on every poll tick.
type Snapshot struct {
	Status          types.FixJobStatus
	ProgressPercent int
	CurrentStep     string
}

// Poller watches one job until it reaches a terminal state. Each poller
// owns exactly one job; concurrent jobs get independent pollers and share
// nothing.
type Poller struct {
	logger   *zap.Logger
	jobs     client.FixJobServiceClient
	interval time.Duration
	deadline time.Duration
}

func NewPoller(logger *zap.Logger, jobs client.FixJobServiceClient, interval, deadline time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if deadline <= 0 {
		deadline = DefaultPollDeadline
	}
	return &Poller{
		logger:   logger,
		jobs:     jobs,
		interval: interval,
		deadline: deadline,
	}
}

// Poll fetches the job status on a fixed interval until it is completed or
// failed, invoking onTick with a display snapshot after every fetch. It
// returns the terminal response, ErrPollDeadline after the deadline, or
// ctx.Err() when the caller goes away - cancelling the context is the
// teardown path and guarantees no further requests are issued.
func (p *Poller) Poll(ctx context.Context, httpCtx *httpclient.Context, jobID string, onTick func(Snapshot)) (*api.JobStatusResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// in-flight requests abort together with the loop
	reqCtx := &httpclient.Context{}
	if httpCtx != nil {
		*reqCtx = *httpCtx
	}
	reqCtx.Ctx = ctx

	for {
		resp, err := p.jobs.GetJob(reqCtx, jobID)
		if err != nil {
			// transient fetch errors ride through to the next tick
			p.logger.Warn("poll failed", zap.Error(err), zap.String("job_id", jobID))
		} else {
			if onTick != nil {
				onTick(snapshotOf(resp))
			}
			if resp.Status.IsTerminal() {
				return resp, nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrPollDeadline
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func snapshotOf(resp *api.JobStatusResponse) Snapshot {
	snap := Snapshot{
		Status:          resp.Status,
		ProgressPercent: resp.ProgressPercent,
		CurrentStep:     resp.CurrentStep,
	}
	if resp.Status == types.FixJobPending {
		if snap.ProgressPercent < pendingProgress {
			snap.ProgressPercent = pendingProgress
		}
		if snap.CurrentStep == "" {
			snap.CurrentStep = pendingStep
		}
	}
	return snap
}
