package zones

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/geo"
)

// DangerZone is a persisted cluster of incident reports whose density near a
// point crossed the configured threshold. Only reportCount and active change
// after creation: reportCount never decreases while the zone is active, and
// zones are deactivated by moderation, never deleted.
type DangerZone struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Center       geo.Point          `bson:"center" json:"center"`
	RadiusMeters float64            `bson:"radiusMeters" json:"radiusMeters"`
	ReportCount  int64              `bson:"reportCount" json:"reportCount"`
	Active       bool               `bson:"active" json:"active"`
	Bucket       string             `bson:"bucket" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Evaluation is the outcome of running the zone engine for one new report.
type Evaluation struct {
	ZoneCreated bool        `json:"zoneCreated"`
	ZoneUpdated bool        `json:"zoneUpdated"`
	Zone        *DangerZone `json:"zone,omitempty"`
}

// LocationCheck reports whether a point lies inside any active danger zone,
// nearest zone first.
type LocationCheck struct {
	InDangerZone bool         `json:"inDangerZone"`
	Zones        []DangerZone `json:"zones"`
}
