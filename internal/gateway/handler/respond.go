package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"vibechart/internal/chartconfig"
	"vibechart/internal/gateway/service/chart"
	llmclient "vibechart/internal/llm/client"
	"vibechart/internal/pipeline"
	"vibechart/internal/render"
	"vibechart/internal/translate"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// classify maps a domain error onto an HTTP status and a client-facing message.
func classify(err error) (int, errorBody) {
	var (
		shapeErr     *pipeline.RequestShapeError
		transportErr *llmclient.TransportError
		extractErr   *translate.ExtractionError
		configErr    *pipeline.ConfigurationError
		validErr     *chartconfig.ValidationError
	)
	switch {
	case errors.Is(err, pipeline.ErrMissingCredentials):
		return http.StatusInternalServerError, errorBody{Error: "API key not configured", Details: err.Error()}
	case errors.As(err, &shapeErr):
		return http.StatusBadRequest, errorBody{Error: "No prompt provided", Details: shapeErr.Error()}
	case errors.As(err, &transportErr):
		status := http.StatusBadGateway
		if transportErr.StatusCode >= 400 && transportErr.StatusCode < 600 {
			status = transportErr.StatusCode
		}
		return status, errorBody{Error: "Language model request failed", Details: transportErr.Error()}
	case errors.As(err, &extractErr):
		return http.StatusBadGateway, errorBody{Error: "No JSON found in model response", Details: extractErr.Error()}
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, errorBody{Error: "Generated configuration is invalid", Details: configErr.Err.Error()}
	case errors.As(err, &validErr):
		return http.StatusBadRequest, errorBody{Error: "Invalid chart configuration", Details: validErr.Error()}
	case errors.Is(err, chart.ErrIncomplete):
		return http.StatusBadRequest, errorBody{Error: chart.ErrIncomplete.Error()}
	case errors.Is(err, render.ErrEmptyDataset):
		return http.StatusBadRequest, errorBody{Error: "Dataset has no plottable rows"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorBody{Error: "Request timed out"}
	}
	return http.StatusInternalServerError, errorBody{Error: "Internal server error", Details: err.Error()}
}

func writeClassified(w http.ResponseWriter, err error) {
	status, body := classify(err)
	writeJSON(w, status, body)
}
