package search

import (
	"sort"

	"github.com/umahmood/haversine"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

type Nearby struct {
	Property   models.Property `json:"property"`
	DistanceKm float64         `json:"distanceKm"`
}

// WithinRadius keeps listings whose coordinates lie within radiusKm of
// (lat, lng), closest first. Ties keep their input order. Listings without
// coordinates (0,0) are skipped.
func WithinRadius(properties []models.Property, lat, lng, radiusKm float64) []Nearby {
	origin := haversine.Coord{Lat: lat, Lon: lng}
	out := make([]Nearby, 0)
	for _, p := range properties {
		c := p.Location.Coordinates
		if c.Latitude == 0 && c.Longitude == 0 {
			continue
		}
		_, km := haversine.Distance(origin, haversine.Coord{Lat: c.Latitude, Lon: c.Longitude})
		if km <= radiusKm {
			out = append(out, Nearby{Property: p, DistanceKm: km})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
