package handlers

import (
	"net/http"

	"github.com/randytsao24/wastewizard/internal/disposal"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

type DisposalHandler struct {
	materials MaterialProvider
}

func NewDisposalHandler(materials MaterialProvider) *DisposalHandler {
	return &DisposalHandler{materials: materials}
}

// GetDisposal returns disposal instructions for ?q=
func (h *DisposalHandler) GetDisposal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if disposal.NormalizeTerm(q) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Material is required",
			"message": "Pass a material name as ?q=",
		})
		return
	}

	match, err := h.materials.FindMaterial(r.Context(), q)
	if err != nil {
		reason := outcome.ReasonOf(err)
		writeJSON(w, statusFor(reason), map[string]any{
			"error":   reason.String(),
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query":   disposal.NormalizeTerm(q),
		"match":   match,
	})
}
