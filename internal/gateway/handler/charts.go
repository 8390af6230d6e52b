package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vibechart/internal/gateway/service/chart"
)

// ChartService loads and saves per-session charts.
type ChartService interface {
	Load(ctx context.Context, sessionID string) (*chart.State, error)
	Save(ctx context.Context, in chart.SaveInput) (*chart.State, error)
}

type ChartsHandler struct {
	svc    ChartService
	logger *zap.Logger
}

func NewChartsHandler(svc ChartService, logger *zap.Logger) *ChartsHandler {
	return &ChartsHandler{svc: svc, logger: logger}
}

type saveChartRequest struct {
	SessionID   string           `json:"sessionId"`
	ChartData   []map[string]any `json:"chartData"`
	Config      json.RawMessage  `json:"config"`
	ChartName   string           `json:"chartName"`
	Description string           `json:"description"`
}

func (h *ChartsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.load(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ChartsHandler) load(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required", "")
		return
	}
	state, err := h.svc.Load(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("load chart failed", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load chart", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *ChartsHandler) save(w http.ResponseWriter, r *http.Request) {
	var in saveChartRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body", err.Error())
		return
	}
	var cfg map[string]any
	if trimmed := strings.TrimSpace(string(in.Config)); trimmed != "" && trimmed != "null" {
		decoded, err := decodeConfig(in.Config)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid chart configuration", "config must be an object")
			return
		}
		cfg = decoded
	}
	state, err := h.svc.Save(r.Context(), chart.SaveInput{
		SessionID:   in.SessionID,
		ChartData:   in.ChartData,
		Config:      cfg,
		Name:        in.ChartName,
		Description: in.Description,
	})
	if err != nil {
		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("save chart failed", zap.String("session_id", in.SessionID), zap.Error(err))
			body = errorBody{Error: "Failed to save chart", Details: err.Error()}
		}
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "state": state})
}
