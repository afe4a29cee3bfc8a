package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceMeters_ZeroForSamePoint(t *testing.T) {
	p := NewPoint(28.6139, 77.2090)
	require.InDelta(t, 0, DistanceMeters(p, p), 1e-9)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := NewPoint(28.6139, 77.2090)
	b := NewPoint(28.7041, 77.1025)
	require.InDelta(t, DistanceMeters(a, b), DistanceMeters(b, a), 1e-6)
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// One degree of latitude is ~111.3 km on this sphere.
	a := NewPoint(0, 0)
	b := NewPoint(1, 0)
	require.InDelta(t, 111319.5, DistanceMeters(a, b), 100)
}

func TestDistanceMeters_ClusteredReportsWithin50m(t *testing.T) {
	center := NewPoint(28.6139, 77.2090)
	nearby := []Point{
		NewPoint(28.6140, 77.2091),
		NewPoint(28.6138, 77.2089),
	}
	for _, p := range nearby {
		require.Less(t, DistanceMeters(center, p), 50.0)
	}
}

func TestDistanceMeters_TriangleInequality(t *testing.T) {
	a := NewPoint(28.6139, 77.2090)
	b := NewPoint(28.7041, 77.1025)
	c := NewPoint(28.5355, 77.3910)
	require.LessOrEqual(t, DistanceMeters(a, c), DistanceMeters(a, b)+DistanceMeters(b, c)+1e-6)
}

func TestMetersToRadians(t *testing.T) {
	require.InDelta(t, 50.0/EarthRadiusMeters, MetersToRadians(50), 1e-12)
	require.Equal(t, 0.0, MetersToRadians(0))
}

func TestPointValidate(t *testing.T) {
	require.NoError(t, NewPoint(28.6139, 77.2090).Validate())
	require.NoError(t, Point{Coordinates: [2]float64{77.2090, 28.6139}}.Validate())

	require.Error(t, NewPoint(91, 0).Validate())
	require.Error(t, NewPoint(-90.1, 0).Validate())
	require.Error(t, NewPoint(0, 181).Validate())
	require.Error(t, NewPoint(0, -180.5).Validate())
	require.Error(t, Point{Type: "Polygon", Coordinates: [2]float64{0, 0}}.Validate())
}
