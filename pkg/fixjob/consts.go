package fixjob

const (
	StreamName    = "fixjob"
	JobsQueueName = "fixjob.queued"
	ConsumerGroup = "fixjob-worker"
)
