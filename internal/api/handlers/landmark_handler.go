package handlers

import (
	"net/http"

	"weather-api/internal/services"
)

type LandmarkHandler struct {
	locationService services.LocationService
}

func NewLandmarkHandler(locationService services.LocationService) *LandmarkHandler {
	return &LandmarkHandler{locationService: locationService}
}

// ListLandmarks returns every landmark that resolves without geocoding.
func (h *LandmarkHandler) ListLandmarks(w http.ResponseWriter, r *http.Request) {
	landmarks, err := h.locationService.ListLandmarks(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, landmarks)
}
