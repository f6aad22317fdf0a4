package handlers

import (
	"net/http"

	"weather-api/internal/services"
)

type RecordStatsHandler struct {
	recordStatsService services.RecordStatsService
}

func NewRecordStatsHandler(recordStatsService services.RecordStatsService) *RecordStatsHandler {
	return &RecordStatsHandler{
		recordStatsService: recordStatsService,
	}
}

func (h *RecordStatsHandler) GetRecordStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.recordStatsService.GetRecordStats(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
