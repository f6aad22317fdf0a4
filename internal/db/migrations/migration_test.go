package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range GetMigrations() {
		assert.False(t, seen[m.Name], "duplicate migration %s", m.Name)
		assert.NotNil(t, m.Run)
		seen[m.Name] = true
	}
}

func TestSeedLandmarks(t *testing.T) {
	landmarks := SeedLandmarks()
	assert.Len(t, landmarks, 10)

	byName := make(map[string][2]float64)
	for _, l := range landmarks {
		assert.True(t, l.Latitude >= -90 && l.Latitude <= 90, l.Name)
		assert.True(t, l.Longitude >= -180 && l.Longitude <= 180, l.Name)
		byName[strings.ToLower(l.Name)] = [2]float64{l.Latitude, l.Longitude}
	}

	assert.Equal(t, [2]float64{48.8584, 2.2945}, byName["eiffel tower"])
	assert.Equal(t, [2]float64{-22.9519, -43.2105}, byName["christ the redeemer"])
}
