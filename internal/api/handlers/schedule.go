package handlers

import (
	"net/http"
	"strings"

	"github.com/randytsao24/wastewizard/internal/outcome"
	"github.com/randytsao24/wastewizard/internal/skill"
)

type ScheduleHandler struct {
	schedule ScheduleProvider
}

func NewScheduleHandler(schedule ScheduleProvider) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// GetSchedule returns the next collection for ?address=
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Address is required",
			"message": "Pass a street address as ?address=",
		})
		return
	}

	res := h.schedule.LookupAddress(r.Context(), address)
	if !res.OK() {
		reason := outcome.ReasonOf(res.Err)
		writeJSON(w, statusFor(reason), map[string]any{
			"error":   reason.String(),
			"stage":   res.Reached.String(),
			"message": skill.ScheduleText(res),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"address":    res.Address,
		"coordinate": res.Coordinate,
		"zone":       res.Zone,
		"date":       res.Collection.Date.Format("2006-01-02"),
		"items":      res.Collection.Items(),
		"speech":     skill.ScheduleText(res),
	})
}
