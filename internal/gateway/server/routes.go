package server

import (
	"net/http"

	"go.uber.org/zap"

	"vibechart/internal/gateway/handler"
	"vibechart/internal/gateway/middleware"
)

type Handlers struct {
	Vibe   *handler.VibeHandler
	Charts *handler.ChartsHandler
	Render *handler.RenderHandler
	Chat   *handler.ChatHandler
	Health *handler.HealthHandler
}

func NewMux(h Handlers, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/vibe", h.Vibe)
	mux.Handle("/api/charts", h.Charts)
	mux.Handle("/api/render", h.Render)
	mux.Handle("/ws/chat", h.Chat)
	mux.Handle("/healthz", h.Health)

	// Middleware
	return middleware.CORS(middleware.Logging(logger)(mux))
}
