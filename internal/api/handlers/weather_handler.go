package handlers

import (
	"net/http"

	"weather-api/internal/services"
)

type WeatherHandler struct {
	weatherService services.WeatherService
}

func NewWeatherHandler(weatherService services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// GetWeather returns current conditions and the daily forecast for ?location= in ?unit=.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	report, err := h.weatherService.Lookup(r.Context(), query.Get("location"), query.Get("unit"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
