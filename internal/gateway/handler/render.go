package handler

import (
	"encoding/json"
	"net/http"

	"vibechart/internal/chartconfig"
	"vibechart/internal/render"
)

type renderRequest struct {
	Config  json.RawMessage `json:"config"`
	Dataset render.Dataset  `json:"dataset"`
}

// RenderHandler turns a configuration and a dataset into a prepared frame.
type RenderHandler struct{}

func NewRenderHandler() *RenderHandler { return &RenderHandler{} }

func (h *RenderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in renderRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body", err.Error())
		return
	}
	tree, err := decodeConfig(in.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid chart configuration", "config must be an object")
		return
	}
	cfg, err := chartconfig.Validate(tree)
	if err != nil {
		writeClassified(w, err)
		return
	}
	frame, err := render.Prepare(in.Dataset, cfg)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}
