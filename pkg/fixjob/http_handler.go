package fixjob

import (
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/db"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/generate"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/legaltext"
	"github.com/complyo-io/complyo-engine/pkg/internal/jobqueue"
)

type HttpHandler struct {
	logger *zap.Logger
	db     db.Database
	jq     *jobqueue.JobQueue

	legal         *legaltext.Generator
	syncGenerator generate.Generator

	freeFixLimit int
	jwtSecret    string
}

func NewHttpHandler(
	logger *zap.Logger,
	database db.Database,
	jq *jobqueue.JobQueue,
	legal *legaltext.Generator,
	syncGenerator generate.Generator,
	freeFixLimit int,
	jwtSecret string,
) *HttpHandler {
	return &HttpHandler{
		logger:        logger,
		db:            database,
		jq:            jq,
		legal:         legal,
		syncGenerator: syncGenerator,
		freeFixLimit:  freeFixLimit,
		jwtSecret:     jwtSecret,
	}
}
