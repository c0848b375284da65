package jobqueue

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// JobQueue is a thin JetStream wrapper: one stream per job family, publish
// by subject, durable consumers for workers.
type JobQueue struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *zap.Logger
}

func New(url string, logger *zap.Logger) (*JobQueue, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &JobQueue{
		conn:   conn,
		js:     js,
		logger: logger,
	}, nil
}

func (q *JobQueue) Stream(ctx context.Context, name, description string, subjects []string, maxMsgs int64) error {
	_, err := q.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        name,
		Description: description,
		Subjects:    subjects,
		MaxMsgs:     maxMsgs,
	})
	return err
}

func (q *JobQueue) Publish(ctx context.Context, subject string, data []byte) error {
	_, err := q.js.Publish(ctx, subject, data)
	return err
}

// Consume attaches a durable consumer and hands every message to handler.
// The returned ConsumeContext must be stopped by the caller on shutdown.
func (q *JobQueue) Consume(ctx context.Context, durable, stream string, filterSubjects []string,
	handler func(msg jetstream.Msg)) (jetstream.ConsumeContext, error) {

	consumer, err := q.js.CreateOrUpdateConsumer(ctx, stream, jetstream.ConsumerConfig{
		Durable:        durable,
		AckPolicy:      jetstream.AckExplicitPolicy,
		FilterSubjects: filterSubjects,
	})
	if err != nil {
		return nil, err
	}

	return consumer.Consume(handler)
}

func (q *JobQueue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}
