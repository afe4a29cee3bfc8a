package zones

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/geo"
	"github.com/xyz-asif/safezone/internal/pkg/logger"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

// In-memory stand-ins backed by haversine distance, honoring the same query
// contracts as the mongo repositories.

type fakeReports struct {
	points []geo.Point
}

func (f *fakeReports) Add(p geo.Point) {
	f.points = append(f.points, p)
}

func (f *fakeReports) CountWithinRadius(_ context.Context, center geo.Point, radiusMeters float64) (int64, error) {
	var n int64
	for _, p := range f.points {
		if geo.DistanceMeters(center, p) <= radiusMeters {
			n++
		}
	}
	return n, nil
}

type fakeZones struct {
	zones []*DangerZone

	// createErr is returned by the next Create call, simulating a lost
	// creation race; the racing winner in hidden becomes visible afterwards.
	createErr error
	hidden    *DangerZone
}

func (f *fakeZones) Create(_ context.Context, zone *DangerZone) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		if f.hidden != nil {
			f.zones = append(f.zones, f.hidden)
			f.hidden = nil
		}
		return err
	}
	zone.ID = primitive.NewObjectID()
	f.zones = append(f.zones, zone)
	return nil
}

func (f *fakeZones) FindOverlapping(_ context.Context, center geo.Point, radiusMeters float64) (*DangerZone, error) {
	var best *DangerZone
	for _, z := range f.zones {
		if geo.DistanceMeters(center, z.Center) <= radiusMeters {
			if best == nil || z.ID.Hex() < best.ID.Hex() {
				best = z
			}
		}
	}
	return best, nil
}

func (f *fakeZones) Reinforce(_ context.Context, id primitive.ObjectID, reportCount int64) (*DangerZone, error) {
	for _, z := range f.zones {
		if z.ID == id {
			if reportCount > z.ReportCount {
				z.ReportCount = reportCount
			}
			z.Active = true
			copied := *z
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeZones) FindActiveNear(_ context.Context, p geo.Point, maxDistanceMeters float64) ([]DangerZone, error) {
	var result []DangerZone
	for _, z := range f.zones {
		if z.Active && geo.DistanceMeters(p, z.Center) <= maxDistanceMeters {
			result = append(result, *z)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return geo.DistanceMeters(p, result[i].Center) < geo.DistanceMeters(p, result[j].Center)
	})
	return result, nil
}

func newTestEngine(threshold int) (*Engine, *fakeReports, *fakeZones) {
	reports := &fakeReports{}
	zoneStore := &fakeZones{}
	eng := NewEngine(reports, zoneStore, threshold, 50, logger.New(logger.ERROR))
	return eng, reports, zoneStore
}

// Reports clustered well inside a 50m radius around (28.6139, 77.2090).
var clusterPoints = []geo.Point{
	geo.NewPoint(28.6139, 77.2090),
	geo.NewPoint(28.6140, 77.2091),
	geo.NewPoint(28.6138, 77.2089),
	geo.NewPoint(28.61395, 77.20905),
	geo.NewPoint(28.61385, 77.20895),
	geo.NewPoint(28.61392, 77.20898),
	geo.NewPoint(28.61388, 77.20902),
	geo.NewPoint(28.61391, 77.20893),
}

func clusterPoint(i int) geo.Point {
	return clusterPoints[i%len(clusterPoints)]
}

func TestOnNewReport_ThresholdProperty(t *testing.T) {
	const threshold = 3
	for n := 0; n <= threshold+5; n++ {
		eng, reports, zoneStore := newTestEngine(threshold)

		for i := 0; i < n; i++ {
			p := clusterPoint(i)
			reports.Add(p)
			_, err := eng.OnNewReport(context.Background(), p)
			require.NoError(t, err)
		}

		check, err := eng.CheckLocation(context.Background(), clusterPoints[0])
		require.NoError(t, err)
		if n >= threshold {
			require.True(t, check.InDangerZone, "n=%d", n)
			require.Len(t, zoneStore.zones, 1, "n=%d", n)
			require.True(t, zoneStore.zones[0].Active)
		} else {
			require.False(t, check.InDangerZone, "n=%d", n)
			require.Empty(t, zoneStore.zones, "n=%d", n)
		}
	}
}

func TestOnNewReport_ConcreteScenario(t *testing.T) {
	eng, reports, _ := newTestEngine(3)

	pts := []geo.Point{
		geo.NewPoint(28.6139, 77.2090),
		geo.NewPoint(28.6140, 77.2091),
		geo.NewPoint(28.6138, 77.2089),
	}

	var last Evaluation
	for _, p := range pts {
		reports.Add(p)
		var err error
		last, err = eng.OnNewReport(context.Background(), p)
		require.NoError(t, err)
	}

	require.True(t, last.ZoneCreated)
	require.False(t, last.ZoneUpdated)
	require.NotNil(t, last.Zone)
	require.EqualValues(t, 3, last.Zone.ReportCount)
	require.True(t, last.Zone.Active)

	check, err := eng.CheckLocation(context.Background(), geo.NewPoint(28.6139, 77.2090))
	require.NoError(t, err)
	require.True(t, check.InDangerZone)
	require.Len(t, check.Zones, 1)
	require.Equal(t, last.Zone.ID, check.Zones[0].ID)
}

func TestOnNewReport_IdempotentMerge(t *testing.T) {
	eng, reports, zoneStore := newTestEngine(3)

	for i := 0; i < 3; i++ {
		p := clusterPoint(i)
		reports.Add(p)
		_, err := eng.OnNewReport(context.Background(), p)
		require.NoError(t, err)
	}
	require.Len(t, zoneStore.zones, 1)

	// A fourth report near the existing zone reinforces it; no second zone.
	p := clusterPoint(3)
	reports.Add(p)
	eval, err := eng.OnNewReport(context.Background(), p)
	require.NoError(t, err)
	require.False(t, eval.ZoneCreated)
	require.True(t, eval.ZoneUpdated)
	require.Len(t, zoneStore.zones, 1)
	require.EqualValues(t, 4, eval.Zone.ReportCount)
}

func TestOnNewReport_ReportCountMonotonic(t *testing.T) {
	eng, reports, zoneStore := newTestEngine(3)

	for i := 0; i < 6; i++ {
		p := clusterPoint(i)
		reports.Add(p)
		_, err := eng.OnNewReport(context.Background(), p)
		require.NoError(t, err)
	}
	require.Len(t, zoneStore.zones, 1)
	high := zoneStore.zones[0].ReportCount

	// A report on the cluster's edge sees a smaller neighborhood count; the
	// zone's count must not decrease.
	edge := geo.NewPoint(28.61425, 77.2090)
	reports.Add(edge)
	_, err := eng.OnNewReport(context.Background(), edge)
	require.NoError(t, err)
	require.GreaterOrEqual(t, zoneStore.zones[0].ReportCount, high)
}

func TestOnNewReport_ReactivatesDeactivatedZone(t *testing.T) {
	eng, reports, zoneStore := newTestEngine(3)

	for i := 0; i < 3; i++ {
		p := clusterPoint(i)
		reports.Add(p)
		_, err := eng.OnNewReport(context.Background(), p)
		require.NoError(t, err)
	}
	zoneStore.zones[0].Active = false

	p := clusterPoint(3)
	reports.Add(p)
	eval, err := eng.OnNewReport(context.Background(), p)
	require.NoError(t, err)
	require.True(t, eval.ZoneUpdated)
	require.True(t, zoneStore.zones[0].Active)
}

func TestOnNewReport_LostCreationRace(t *testing.T) {
	eng, reports, zoneStore := newTestEngine(3)

	winner := &DangerZone{
		ID:           primitive.NewObjectID(),
		Center:       clusterPoints[0],
		RadiusMeters: 50,
		ReportCount:  3,
		Active:       true,
	}
	zoneStore.createErr = apperrors.ErrDuplicate
	zoneStore.hidden = winner

	for i := 0; i < 3; i++ {
		reports.Add(clusterPoint(i))
	}
	eval, err := eng.OnNewReport(context.Background(), clusterPoints[0])
	require.NoError(t, err)
	require.False(t, eval.ZoneCreated)
	require.True(t, eval.ZoneUpdated)
	require.Len(t, zoneStore.zones, 1)
	require.Equal(t, winner.ID, eval.Zone.ID)
}

func TestOnNewReport_InvalidLocation(t *testing.T) {
	eng, _, _ := newTestEngine(3)
	_, err := eng.OnNewReport(context.Background(), geo.NewPoint(120, 77))
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCheckLocation_Empty(t *testing.T) {
	eng, _, _ := newTestEngine(3)
	check, err := eng.CheckLocation(context.Background(), geo.NewPoint(28.6139, 77.2090))
	require.NoError(t, err)
	require.False(t, check.InDangerZone)
	require.NotNil(t, check.Zones)
	require.Empty(t, check.Zones)
}

func TestCheckLocation_InvalidPoint(t *testing.T) {
	eng, _, _ := newTestEngine(3)
	_, err := eng.CheckLocation(context.Background(), geo.NewPoint(0, 999))
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestBucketKey_Deterministic(t *testing.T) {
	a := BucketKey(geo.NewPoint(28.6139, 77.2090), 50)
	b := BucketKey(geo.NewPoint(28.6139, 77.2090), 50)
	require.Equal(t, a, b)

	far := BucketKey(geo.NewPoint(28.7041, 77.1025), 50)
	require.NotEqual(t, a, far)
}
