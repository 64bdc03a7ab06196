package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "wastewizard",
		"description": "Toronto curbside collection schedules and waste disposal lookup",
		"version":     version,
		"endpoints": map[string]string{
			"GET /":                         "API information",
			"GET /health":                   "Health check",
			"GET /metrics":                  "Prometheus metrics",
			"POST /alexa":                   "Voice skill webhook",
			"GET /api/schedule?address=...": "Next collection for a street address",
			"GET /api/disposal?q=...":       "Disposal instructions for a material",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the root endpoint (/) for available routes",
	})
}
