package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"weather-api/internal/logger"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/providers/youtube"

	"github.com/sirupsen/logrus"
)

const travelVideoCount = 4

// VideoSearcher finds travel videos for a place.
type VideoSearcher interface {
	Enabled() bool
	SearchVideos(ctx context.Context, query string, maxResults int) ([]youtube.Video, error)
}

type MapsInfo struct {
	Location string `json:"location"`
}

// LocationData is what the UI needs to render a map pin and travel videos.
type LocationData struct {
	Maps    MapsInfo        `json:"maps"`
	YouTube []youtube.Video `json:"youtube"`
}

type LocationDataService interface {
	GetLocationData(ctx context.Context, query string) (*LocationData, error)
}

type locationDataService struct {
	locations LocationService
	videos    VideoSearcher
}

func NewLocationDataService(locations LocationService, videos VideoSearcher) LocationDataService {
	return &locationDataService{locations: locations, videos: videos}
}

// GetLocationData resolves query to a "lat,lon" map location, falling back to the raw query
// when the place is unknown, and attaches travel videos. Video failures yield an empty list.
func (s *locationDataService) GetLocationData(ctx context.Context, query string) (*LocationData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.InvalidInput("Location parameter is required")
	}

	mapLocation := query
	loc, err := s.locations.Resolve(ctx, query)
	switch {
	case err == nil:
		mapLocation = strconv.FormatFloat(loc.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(loc.Longitude, 'f', -1, 64)
	case errors.Is(err, apperrors.ErrLocationNotFound):
		// unknown places still get a map search on the raw query
	case errors.Is(err, apperrors.ErrInvalidInput):
		return nil, err
	default:
		logger.LogEvent(logrus.ErrorLevel, "Geocoding failed for location data", logrus.Fields{
			"location": query,
			"error":    err.Error(),
		})
		return nil, &apperrors.Error{
			Err:     err,
			Message: "Failed to get coordinates for location",
			Code:    "GEOCODING_FAILED",
			Status:  http.StatusInternalServerError,
		}
	}

	return &LocationData{
		Maps:    MapsInfo{Location: mapLocation},
		YouTube: s.travelVideos(ctx, query),
	}, nil
}

func (s *locationDataService) travelVideos(ctx context.Context, query string) []youtube.Video {
	if s.videos == nil || !s.videos.Enabled() {
		return []youtube.Video{}
	}

	videos, err := s.videos.SearchVideos(ctx, query+" travel guide", travelVideoCount)
	if err != nil {
		logger.LogEvent(logrus.WarnLevel, "YouTube search failed", logrus.Fields{
			"location": query,
			"error":    err.Error(),
		})
		return []youtube.Video{}
	}
	return videos
}
