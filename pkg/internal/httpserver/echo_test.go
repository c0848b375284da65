package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testRoutes struct {
	registered bool
}

func (r *testRoutes) Register(e *echo.Echo) {
	r.registered = true
	e.GET("/ping", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "pong")
	})
}

func TestRegisterReturnsServer(t *testing.T) {
	routes := &testRoutes{}

	e, tp, err := Register(zap.NewNop(), routes)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.NotNil(t, tp)
	assert.True(t, routes.registered)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())

	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestQueryArrayParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?domain=example.de&domain[]=beispiel.de&other=x", nil)
	ctx := e.NewContext(req, httptest.NewRecorder())

	values := QueryArrayParam(ctx, "domain")
	assert.ElementsMatch(t, []string{"example.de", "beispiel.de"}, values)
	assert.Empty(t, QueryArrayParam(ctx, "missing"))
}
