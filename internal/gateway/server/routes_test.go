package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"vibechart/internal/gateway/handler"
	"vibechart/internal/gateway/middleware"
	"vibechart/internal/pipeline"
)

func TestNewMux_RoutesThroughMiddleware(t *testing.T) {
	runner := pipeline.New(nil, zap.NewNop())
	mux := NewMux(Handlers{
		Vibe:   handler.NewVibeHandler(runner, zap.NewNop()),
		Charts: handler.NewChartsHandler(nil, zap.NewNop()),
		Render: handler.NewRenderHandler(),
		Chat:   handler.NewChatHandler(runner, nil, zap.NewNop()),
		Health: handler.NewHealthHandler(nil),
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/vibe", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/vibe", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
