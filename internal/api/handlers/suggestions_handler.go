package handlers

import (
	"net/http"
	"strconv"

	"weather-api/internal/services"
)

const maxSuggestions = 25

// SuggestionResponse holds the suggested location names
type SuggestionResponse struct {
	Results []string `json:"results"`
}

// SuggestionsHandler handles all suggestion-related requests
type SuggestionsHandler struct {
	locationService services.LocationService
}

func NewSuggestionsHandler(locationService services.LocationService) *SuggestionsHandler {
	return &SuggestionsHandler{locationService: locationService}
}

func (h *SuggestionsHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("search")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > maxSuggestions {
		limit = maxSuggestions
	}

	results, err := h.locationService.Suggest(r.Context(), searchTerm, limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SuggestionResponse{Results: results})
}
