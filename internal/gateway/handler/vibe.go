package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vibechart/internal/chartconfig"
	"vibechart/internal/gateway/middleware"
	"vibechart/internal/pipeline"
	"vibechart/internal/translate"
	"vibechart/internal/util/jsonutil"
)

// Runner executes one instruction against a configuration.
type Runner interface {
	Ready() error
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

type VibeHandler struct {
	runner Runner
	logger *zap.Logger
}

func NewVibeHandler(runner Runner, logger *zap.Logger) *VibeHandler {
	return &VibeHandler{runner: runner, logger: logger}
}

type vibeRequest struct {
	UserPrompt    string           `json:"userPrompt"`
	CurrentConfig json.RawMessage  `json:"currentConfig"`
	Conversation  []translate.Turn `json:"conversation"`
}

func (h *VibeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := h.runner.Ready(); err != nil {
		writeClassified(w, err)
		return
	}
	var in vibeRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body", "Request body must be valid JSON")
		return
	}
	current, err := decodeConfig(in.CurrentConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body", "currentConfig must be an object")
		return
	}

	res, err := h.runner.Run(r.Context(), pipeline.Request{
		Instruction: in.UserPrompt,
		History:     in.Conversation,
		Current:     current,
	})
	if err != nil {
		h.logger.Warn("vibe request failed",
			zap.String("request_id", middleware.RequestIDFrom(r.Context())),
			zap.Error(err))
		writeClassified(w, err)
		return
	}
	if res.Fallback {
		w.Header().Set(middleware.FallbackHeader, "true")
	}
	writeJSON(w, http.StatusOK, res.Tree)
}

// decodeConfig accepts an absent or null config as a new chart. A config sent
// as a JSON-encoded string is unwrapped once.
func decodeConfig(raw json.RawMessage) (chartconfig.Tree, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return chartconfig.Tree{}, nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var tree chartconfig.Tree
		if err := jsonutil.UnmarshalFlex([]byte(trimmed), &tree); err != nil {
			return nil, err
		}
		if tree == nil {
			tree = chartconfig.Tree{}
		}
		return tree, nil
	}
	return jsonutil.DecodeObject([]byte(trimmed))
}
