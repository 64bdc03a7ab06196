package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/alexa"
	"github.com/randytsao24/wastewizard/internal/skill"
)

// maxEnvelopeBytes bounds a voice request body
const maxEnvelopeBytes = 1 << 20

type AlexaHandler struct {
	skill  VoiceSkill
	logger *zap.Logger
}

func NewAlexaHandler(s VoiceSkill, logger *zap.Logger) *AlexaHandler {
	return &AlexaHandler{skill: s, logger: logger}
}

// Webhook answers one voice platform request. Requests the skill refuses get
// an error status and no speech.
func (h *AlexaHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var env alexa.RequestEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeBytes)).Decode(&env); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid request envelope",
			"message": err.Error(),
		})
		return
	}

	resp, err := h.skill.Handle(r.Context(), &env)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, skill.ErrInvalidApplication) {
			status = http.StatusForbidden
		}
		h.logger.Warn("voice request rejected",
			zap.String("request_id", env.Request.RequestID),
			zap.Error(err),
		)
		writeJSON(w, status, map[string]any{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
