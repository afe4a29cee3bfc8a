package zones

import (
	"github.com/golang/geo/s2"

	"github.com/xyz-asif/safezone/internal/geo"
)

// BucketKey maps a point onto a coarse S2 cell sized to the zone diameter.
// A unique index on the key makes zone creation race-safe: two concurrent
// triggering reports in the same cell cannot both insert a zone. Zones in
// adjacent cells may still end up closer than the radius; that is accepted
// coexistence, not corruption.
func BucketKey(p geo.Point, radiusMeters float64) string {
	level := s2.AvgEdgeMetric.ClosestLevel(2 * radiusMeters / geo.EarthRadiusMeters)
	cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lng()))
	return cell.Parent(level).ToToken()
}
