package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/complyo-io/complyo-engine/pkg/fixjob"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/db"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/generate"
	"github.com/complyo-io/complyo-engine/pkg/internal/jobqueue"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

var DoFixJobsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "complyo",
	Subsystem: "fix_worker",
	Name:      "do_fix_jobs_total",
	Help:      "Count of done fix jobs in fix-worker service",
}, []string{"status"})

var DoFixJobsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "complyo",
	Subsystem: "fix_worker",
	Name:      "do_fix_jobs_duration_seconds",
	Help:      "Duration of done fix jobs in fix-worker service",
	Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
}, []string{"status"})

type Worker struct {
	id        string
	jq        *jobqueue.JobQueue
	db        db.Database
	logger    *zap.Logger
	generator generate.Generator
	pusher    *push.Pusher
}

func NewWorker(
	id string,
	natsURL string,
	database db.Database,
	logger *zap.Logger,
	generator generate.Generator,
	prometheusPushAddress string,
	ctx context.Context,
) (*Worker, error) {
	if id == "" {
		return nil, fmt.Errorf("'id' must be set to a non empty string")
	}

	jq, err := jobqueue.New(natsURL, logger)
	if err != nil {
		return nil, err
	}

	if err := jq.Stream(ctx, fixjob.StreamName, "fix job queue", []string{fixjob.JobsQueueName}, 1000); err != nil {
		jq.Close()
		return nil, err
	}

	w := &Worker{
		id:        id,
		jq:        jq,
		db:        database,
		logger:    logger,
		generator: generator,
	}

	if prometheusPushAddress != "" {
		w.pusher = push.New(prometheusPushAddress, "fix-worker")
		w.pusher.Collector(DoFixJobsCount).
			Collector(DoFixJobsDuration)
	}
	return w, nil
}

func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("starting fix worker", zap.String("id", w.id))

	consumeCtx, err := w.jq.Consume(ctx, fixjob.ConsumerGroup, fixjob.StreamName, []string{fixjob.JobsQueueName},
		func(msg jetstream.Msg) {
			var job fixjob.QueuedJob
			if err := json.Unmarshal(msg.Data(), &job); err != nil {
				w.logger.Error("failed to unmarshal job", zap.Error(err))

				// nothing more can be done by redelivering a
				// malformed message
				if err := msg.Ack(); err != nil {
					w.logger.Error("failed to ack malformed message", zap.Error(err))
				}
				return
			}

			w.ProcessJob(ctx, job)

			if err := msg.Ack(); err != nil {
				w.logger.Error("failed to ack message", zap.Error(err), zap.String("job_id", job.JobID))
			}
			if w.pusher != nil {
				if err := w.pusher.Push(); err != nil {
					w.logger.Error("failed to push metrics", zap.Error(err))
				}
			}
		})
	if err != nil {
		return err
	}
	defer consumeCtx.Stop()

	<-ctx.Done()
	return ctx.Err()
}

// ProcessJob walks one job through the state machine. A panic anywhere in
// generation becomes a failed job, never a dead worker.
func (w *Worker) ProcessJob(ctx context.Context, job fixjob.QueuedJob) {
	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("fix job panicked",
				zap.String("job_id", job.JobID),
				zap.String("stack", errors.Wrap(r, 2).ErrorStack()))

			DoFixJobsCount.WithLabelValues("failure").Inc()
			DoFixJobsDuration.WithLabelValues("failure").Observe(time.Since(startTime).Seconds())
			if err := w.db.SetFixJobFailure(job.JobID, fmt.Sprintf("panicked: %v", r)); err != nil {
				w.logger.Error("failed to record panic failure", zap.Error(err))
			}
		}
	}()

	fail := func(err error) {
		w.logger.Error("fix job failed", zap.String("job_id", job.JobID), zap.Error(err))
		DoFixJobsCount.WithLabelValues("failure").Inc()
		DoFixJobsDuration.WithLabelValues("failure").Observe(time.Since(startTime).Seconds())
		if dbErr := w.db.SetFixJobFailure(job.JobID, err.Error()); dbErr != nil {
			w.logger.Error("failed to record failure", zap.Error(dbErr))
		}
	}

	if err := w.db.UpdateFixJobProgress(job.JobID, types.FixJobProcessing, 25, "KI analysiert Problem…"); err != nil {
		fail(fmt.Errorf("update progress: %w", err))
		return
	}

	if err := w.db.UpdateFixJobProgress(job.JobID, types.FixJobProcessing, 50, "Lösung wird generiert…"); err != nil {
		fail(fmt.Errorf("update progress: %w", err))
		return
	}

	result, err := w.generator.Generate(ctx, job.Issue)
	if err != nil {
		fail(fmt.Errorf("generate fix: %w", err))
		return
	}

	if err := w.db.UpdateFixJobProgress(job.JobID, types.FixJobProcessing, 85, "Ergebnis wird geprüft…"); err != nil {
		fail(fmt.Errorf("update progress: %w", err))
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		fail(fmt.Errorf("marshal result: %w", err))
		return
	}

	if err := w.db.SetFixJobResult(job.JobID, datatypes.JSON(payload)); err != nil {
		fail(fmt.Errorf("store result: %w", err))
		return
	}

	if job.Domain != "" {
		if err := w.db.IncrementFixesUsed(job.Domain); err != nil {
			w.logger.Error("failed to increment quota", zap.Error(err), zap.String("domain", job.Domain))
		}
	}

	DoFixJobsCount.WithLabelValues("successful").Inc()
	DoFixJobsDuration.WithLabelValues("successful").Observe(time.Since(startTime).Seconds())
	w.logger.Info("fix job completed",
		zap.String("job_id", job.JobID),
		zap.String("issue_id", job.Issue.ID))
}

func (w *Worker) Stop() {
	if w.jq != nil {
		w.jq.Close()
	}
}
