package handlers

import (
	"net/http"

	"weather-api/internal/services"
)

type LocationDataHandler struct {
	locationDataService services.LocationDataService
}

func NewLocationDataHandler(locationDataService services.LocationDataService) *LocationDataHandler {
	return &LocationDataHandler{locationDataService: locationDataService}
}

func (h *LocationDataHandler) GetLocationData(w http.ResponseWriter, r *http.Request) {
	data, err := h.locationDataService.GetLocationData(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, data)
}
