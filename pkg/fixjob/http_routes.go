package fixjob

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	dbpkg "github.com/complyo-io/complyo-engine/pkg/fixjob/db"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/legaltext"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpserver"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

func (h *HttpHandler) Register(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	auth := httpserver.BearerAuth(h.jwtSecret)

	v1.POST("/fix-jobs", h.createFixJob, auth)
	v1.GET("/fix-jobs/:job_id", h.getFixJob, auth)
	v1.POST("/fix/generate", h.generateSync, auth)
	v1.GET("/erecht24/imprint", h.legalText(legaltext.KindImprint), auth)
	v1.GET("/erecht24/privacy-policy", h.legalText(legaltext.KindPrivacyPolicy), auth)
	v1.GET("/user/domain-locks", h.listDomainLocks, auth)
}

func bindValidate(ctx echo.Context, i any) error {
	if err := ctx.Bind(i); err != nil {
		return err
	}
	if err := ctx.Validate(i); err != nil {
		return err
	}
	return nil
}

// domainOf derives the quota key of a scan. Scan identifiers carry the
// analyzed host as the second segment ("scan:<host>:<nonce>"); anything
// else falls back to the raw scan id so quota still applies per scan.
func domainOf(scanID string) string {
	parts := strings.Split(scanID, ":")
	if len(parts) >= 2 {
		return parts[1]
	}
	return scanID
}

func (h *HttpHandler) createFixJob(ctx echo.Context) error {
	var req api.CreateJobRequest
	if err := bindValidate(ctx, &req); err != nil {
		h.logger.Error("failed to bind fix job request", zap.Error(err))
		return ctx.JSON(http.StatusBadRequest, "invalid fix job request")
	}
	if !req.IssueData.AutoFixable {
		return ctx.JSON(http.StatusBadRequest, "issue is not auto-fixable")
	}

	domain := domainOf(req.ScanID)
	lock, err := h.db.GetOrCreateDomainLock(domain, h.freeFixLimit)
	if err != nil {
		h.logger.Error("failed to load domain lock", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, "failed to check fix quota")
	}
	if lock.ToAPI().QuotaExhausted() {
		return ctx.JSON(http.StatusPaymentRequired, api.QuotaExceededResponse{
			Code: api.ErrCodeFixLimitReached,
			Detail: api.QuotaDetail{
				FixesUsed:  lock.FixesUsed,
				FixesLimit: lock.FixesLimit,
			},
		})
	}

	issueData, err := json.Marshal(req.IssueData)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, "invalid issue payload")
	}

	job := dbpkg.FixJob{
		JobID:           uuid.New().String(),
		ScanID:          req.ScanID,
		IssueID:         req.IssueID,
		Domain:          domain,
		Status:          types.FixJobPending,
		ProgressPercent: 0,
		CurrentStep:     "In Warteschlange",
		IssueData:       datatypes.JSON(issueData),
	}
	if err := h.db.CreateFixJob(&job); err != nil {
		h.logger.Error("failed to create fix job", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, "failed to create fix job")
	}

	message, err := json.Marshal(QueuedJob{
		JobID:  job.JobID,
		ScanID: req.ScanID,
		Domain: domain,
		Issue:  req.IssueData,
	})
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, "failed to queue fix job")
	}
	if err := h.jq.Publish(ctx.Request().Context(), JobsQueueName, message); err != nil {
		h.logger.Error("failed to publish fix job", zap.Error(err), zap.String("job_id", job.JobID))
		if dbErr := h.db.SetFixJobFailure(job.JobID, "queueing failed"); dbErr != nil {
			h.logger.Error("failed to mark job failed", zap.Error(dbErr))
		}
		return ctx.JSON(http.StatusInternalServerError, "failed to queue fix job")
	}

	h.logger.Info("fix job queued",
		zap.String("job_id", job.JobID),
		zap.String("domain", domain),
		zap.String("user_id", httpserver.GetUserID(ctx)))

	return ctx.JSON(http.StatusCreated, api.CreateJobResponse{
		JobID:  job.JobID,
		Status: job.Status,
	})
}

func (h *HttpHandler) getFixJob(ctx echo.Context) error {
	jobID := ctx.Param("job_id")

	job, err := h.db.GetFixJob(jobID)
	if err != nil {
		h.logger.Error("failed to get fix job", zap.Error(err), zap.String("job_id", jobID))
		return ctx.JSON(http.StatusInternalServerError, "failed to get fix job")
	}
	if job == nil {
		return echo.NewHTTPError(http.StatusNotFound, "fix job not found")
	}

	return ctx.JSON(http.StatusOK, api.JobStatusResponse{
		JobID:           job.JobID,
		Status:          job.Status,
		ProgressPercent: job.ProgressPercent,
		CurrentStep:     job.CurrentStep,
		Result:          json.RawMessage(job.Result),
		ErrorMessage:    job.ErrorMessage,
	})
}

// generateSync is the legacy path for callers without a scan id: the fix
// is generated inline and never enters the job queue.
func (h *HttpHandler) generateSync(ctx echo.Context) error {
	var req api.GenerateSyncRequest
	if err := bindValidate(ctx, &req); err != nil {
		return ctx.JSON(http.StatusBadRequest, "invalid generate request")
	}
	if !req.IssueData.AutoFixable {
		return ctx.JSON(http.StatusBadRequest, "issue is not auto-fixable")
	}

	result, err := h.syncGenerator.Generate(ctx.Request().Context(), req.IssueData)
	if err != nil {
		h.logger.Error("failed to generate fix", zap.Error(err), zap.String("issue_id", req.IssueData.ID))
		return ctx.JSON(http.StatusInternalServerError, "failed to generate fix")
	}

	return ctx.JSON(http.StatusOK, api.GenerateSyncResponse{Result: *result})
}

func (h *HttpHandler) legalText(kind legaltext.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		language := ctx.QueryParam("language")

		html, err := h.legal.Generate(kind, language)
		if err != nil {
			h.logger.Error("failed to generate legal text", zap.Error(err), zap.String("kind", string(kind)))
			return ctx.JSON(http.StatusBadRequest, err.Error())
		}

		return ctx.JSON(http.StatusOK, api.LegalTextResponse{HTML: html})
	}
}

func (h *HttpHandler) listDomainLocks(ctx echo.Context) error {
	locks, err := h.db.ListDomainLocks(httpserver.QueryArrayParam(ctx, "domain"))
	if err != nil {
		h.logger.Error("failed to list domain locks", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, "failed to list domain locks")
	}

	out := make([]types.DomainLock, 0, len(locks))
	for _, lock := range locks {
		out = append(out, lock.ToAPI())
	}
	return ctx.JSON(http.StatusOK, api.DomainLocksResponse{
		Success:     true,
		DomainLocks: out,
	})
}
