package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/features/zones"
	"github.com/xyz-asif/safezone/internal/geo"
)

// Report is a single user-submitted, geolocated incident record. Immutable
// once created except for the moderation-owned verified flag and an optional
// evidence photo.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReporterID  primitive.ObjectID `bson:"reporterId" json:"reporterId"`
	Description string             `bson:"description" json:"description"`
	Location    geo.Point          `bson:"location" json:"location"`
	PhotoURL    string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Verified    bool               `bson:"verified" json:"verified"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Request DTOs

type CreateReportRequest struct {
	Description string   `json:"description" binding:"required,min=3,max=1000"`
	Lat         *float64 `json:"lat" binding:"required"`
	Lng         *float64 `json:"lng" binding:"required"`
}

// Response DTOs

type CreateReportResponse struct {
	Report     Report           `json:"report"`
	Evaluation zones.Evaluation `json:"zoneEvaluation"`
}
