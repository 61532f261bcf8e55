package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

func at(id string, lat, lng float64) models.Property {
	return models.Property{ID: id, Location: models.Location{Coordinates: models.Coordinates{Latitude: lat, Longitude: lng}}}
}

func TestWithinRadius(t *testing.T) {
	ps := []models.Property{
		at("andheri", 19.1136, 72.8697),
		at("bandra", 19.0596, 72.8295),
		at("pune", 18.5204, 73.8567),
		at("unknown", 0, 0),
	}

	got := WithinRadius(ps, 19.0544, 72.8406, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "bandra", got[0].Property.ID)
	assert.Equal(t, "andheri", got[1].Property.ID)
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
}

func TestWithinRadius_NothingInRange(t *testing.T) {
	got := WithinRadius([]models.Property{at("pune", 18.5204, 73.8567)}, 28.6139, 77.2090, 5)
	assert.Empty(t, got)
}
