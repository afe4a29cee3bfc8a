package zones

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/geo"
	"github.com/xyz-asif/safezone/internal/pkg/logger"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

// ReportCounter counts incident reports around a point. Implemented by the
// reports repository; the boundary counts as inside.
type ReportCounter interface {
	CountWithinRadius(ctx context.Context, center geo.Point, radiusMeters float64) (int64, error)
}

// ZoneStore is the slice of zone persistence the engine needs.
type ZoneStore interface {
	Create(ctx context.Context, zone *DangerZone) error
	FindOverlapping(ctx context.Context, center geo.Point, radiusMeters float64) (*DangerZone, error)
	Reinforce(ctx context.Context, id primitive.ObjectID, reportCount int64) (*DangerZone, error)
	FindActiveNear(ctx context.Context, p geo.Point, maxDistanceMeters float64) ([]DangerZone, error)
}

// Engine maintains danger zones as reports come in: once enough reports
// cluster inside the configured radius it creates a zone, or reinforces an
// overlapping one.
type Engine struct {
	reports      ReportCounter
	zones        ZoneStore
	threshold    int64
	radiusMeters float64
	log          *logger.Logger
}

func NewEngine(reports ReportCounter, zones ZoneStore, threshold int, radiusMeters float64, log *logger.Logger) *Engine {
	return &Engine{
		reports:      reports,
		zones:        zones,
		threshold:    int64(threshold),
		radiusMeters: radiusMeters,
		log:          log,
	}
}

// OnNewReport evaluates the area around a just-persisted report. The count
// includes the new report itself. Below the threshold nothing happens. At or
// above it, an overlapping zone (active or not) is reinforced: its count is
// raised to max(existing, count) and it is reactivated. Otherwise a new zone
// is created centered on the triggering report's location — not a centroid;
// the radius absorbs positional spread and creation stays O(1).
func (e *Engine) OnNewReport(ctx context.Context, location geo.Point) (Evaluation, error) {
	if err := location.Validate(); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}

	count, err := e.reports.CountWithinRadius(ctx, location, e.radiusMeters)
	if err != nil {
		return Evaluation{}, err
	}
	if count < e.threshold {
		return Evaluation{}, nil
	}

	existing, err := e.zones.FindOverlapping(ctx, location, e.radiusMeters)
	if err != nil {
		return Evaluation{}, err
	}
	if existing != nil {
		updated, err := e.zones.Reinforce(ctx, existing.ID, count)
		if err != nil {
			return Evaluation{}, err
		}
		return Evaluation{ZoneUpdated: true, Zone: updated}, nil
	}

	zone := &DangerZone{
		Center:       location,
		RadiusMeters: e.radiusMeters,
		ReportCount:  count,
		Active:       true,
		Bucket:       BucketKey(location, e.radiusMeters),
	}
	err = e.zones.Create(ctx, zone)
	if err == nil {
		e.log.Info("new danger zone created id=%s reports=%d", zone.ID.Hex(), count)
		return Evaluation{ZoneCreated: true, Zone: zone}, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		return Evaluation{}, err
	}

	// Lost the creation race: another report claimed the bucket first.
	// Reinforce the winner instead.
	existing, ferr := e.zones.FindOverlapping(ctx, location, e.radiusMeters)
	if ferr != nil {
		return Evaluation{}, ferr
	}
	if existing == nil {
		// The winner sits in the same bucket but outside the overlap radius.
		// Two near-identical zones coexisting is accepted behavior.
		e.log.Warn("zone bucket taken but no overlap at (%v, %v)", location.Lat(), location.Lng())
		return Evaluation{}, nil
	}
	updated, err := e.zones.Reinforce(ctx, existing.ID, count)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{ZoneUpdated: true, Zone: updated}, nil
}

// CheckLocation reports the active zones covering a point, nearest first.
func (e *Engine) CheckLocation(ctx context.Context, p geo.Point) (LocationCheck, error) {
	if err := p.Validate(); err != nil {
		return LocationCheck{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}

	found, err := e.zones.FindActiveNear(ctx, p, e.radiusMeters)
	if err != nil {
		return LocationCheck{}, err
	}
	if found == nil {
		found = []DangerZone{}
	}
	return LocationCheck{
		InDangerZone: len(found) > 0,
		Zones:        found,
	}, nil
}
