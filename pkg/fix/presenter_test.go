package fix

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/client"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

func TestPresentCompletedCode(t *testing.T) {
	presenter := NewPresenter(zap.NewNop())

	p := presenter.Present(&api.JobStatusResponse{
		JobID:  "j1",
		Status: types.FixJobCompleted,
		Result: json.RawMessage(`{"type":"code","content":"<script src=\"consent.js\"></script>","language":"html"}`),
	})

	assert.Equal(t, PresentationCode, p.Kind)
	assert.Contains(t, p.Code, "consent.js")
	assert.Equal(t, "html", p.Language)
}

func TestPresentMalformedResultDoesNotPanic(t *testing.T) {
	presenter := NewPresenter(zap.NewNop())

	assert.NotPanics(t, func() {
		p := presenter.Present(&api.JobStatusResponse{
			JobID:  "j1",
			Status: types.FixJobCompleted,
			Result: json.RawMessage(`"{not valid json"`),
		})
		assert.Equal(t, PresentationEmpty, p.Kind)
	})
}

func TestPresentTextIsSanitized(t *testing.T) {
	presenter := NewPresenter(zap.NewNop())

	p := presenter.Present(&api.JobStatusResponse{
		Status: types.FixJobCompleted,
		Result: json.RawMessage(`{"type":"text","content":"<h1>Impressum</h1><script>alert(1)</script>"}`),
	})

	assert.Equal(t, PresentationText, p.Kind)
	assert.Contains(t, p.HTML, "Impressum")
	assert.NotContains(t, p.HTML, "<script>")
}

func TestPresentWidgetAsCode(t *testing.T) {
	presenter := NewPresenter(zap.NewNop())

	p := presenter.Present(&api.JobStatusResponse{
		Status: types.FixJobCompleted,
		Result: json.RawMessage(`{"type":"widget","embed_script":"<script src=\"widget.js\"></script>","fixed_issue_ids":["i1","i2"]}`),
	})

	assert.Equal(t, PresentationCode, p.Kind)
	assert.Contains(t, p.Code, "widget.js")
}

func TestPresentFailed(t *testing.T) {
	presenter := NewPresenter(zap.NewNop())

	p := presenter.Present(&api.JobStatusResponse{
		Status:       types.FixJobFailed,
		ErrorMessage: "model unavailable",
	})
	assert.Equal(t, PresentationError, p.Kind)
	assert.Equal(t, "model unavailable", p.ErrorMessage)

	p = presenter.Present(&api.JobStatusResponse{Status: types.FixJobFailed})
	assert.Equal(t, PresentationError, p.Kind)
	assert.NotEmpty(t, p.ErrorMessage)
}

func TestPresentErrorQuota(t *testing.T) {
	presenter := NewPresenter(zap.NewNop())

	p := presenter.PresentError(&client.QuotaError{FixesUsed: 1, FixesLimit: 1})
	assert.Equal(t, PresentationPaywall, p.Kind)
	assert.Equal(t, 1, p.FixesUsed)
	assert.Equal(t, 1, p.FixesLimit)

	p = presenter.PresentError(errors.New("boom"))
	assert.Equal(t, PresentationError, p.Kind)
	assert.Equal(t, "boom", p.ErrorMessage)
}
