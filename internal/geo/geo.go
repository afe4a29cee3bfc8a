package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the WGS84 equatorial radius used for all spherical math.
// Mongo's $centerSphere expects radii expressed in radians on this sphere.
const EarthRadiusMeters = 6378137.0

// Point is a GeoJSON point as stored in MongoDB 2dsphere indexes.
// Coordinates are [longitude, latitude], in that order.
type Point struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

// NewPoint builds a GeoJSON point from a lat/lng pair.
func NewPoint(lat, lng float64) Point {
	return Point{
		Type:        "Point",
		Coordinates: [2]float64{lng, lat},
	}
}

func (p Point) Lng() float64 { return p.Coordinates[0] }
func (p Point) Lat() float64 { return p.Coordinates[1] }

// Validate checks that the point holds well-formed WGS84 coordinates.
func (p Point) Validate() error {
	if p.Type != "" && p.Type != "Point" {
		return fmt.Errorf("unsupported geometry type %q", p.Type)
	}
	lat, lng := p.Lat(), p.Lng()
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates must be numbers")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(a, b Point) float64 {
	la := s2.LatLngFromDegrees(a.Lat(), a.Lng())
	lb := s2.LatLngFromDegrees(b.Lat(), b.Lng())
	return la.Distance(lb).Radians() * EarthRadiusMeters
}

// MetersToRadians converts a distance in meters to radians on the earth
// sphere, the unit $centerSphere queries are expressed in.
func MetersToRadians(m float64) float64 {
	return m / EarthRadiusMeters
}
