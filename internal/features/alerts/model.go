package alerts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/geo"
)

// Delivery status of an SOS alert. Pending alerts are being dispatched,
// failed alerts had no successful delivery and are retried by the sweeper,
// sent is terminal.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// SOSAlert records one SOS trigger. Contacts keeps the full requested
// recipient list; ContactsNotified tracks which of them actually received
// the message, so partial failures stay visible and retryable.
type SOSAlert struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	UserName         string             `bson:"userName" json:"userName"`
	Location         geo.Point          `bson:"location" json:"location"`
	Contacts         []string           `bson:"contacts" json:"contacts"`
	ContactsNotified []string           `bson:"contactsNotified" json:"contactsNotified"`
	PoliceNotified   bool               `bson:"policeNotified" json:"policeNotified"`
	Status           string             `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Notified reports whether the given recipient already received this alert.
func (a *SOSAlert) Notified(recipient string) bool {
	for _, c := range a.ContactsNotified {
		if c == recipient {
			return true
		}
	}
	return false
}

// Request DTOs

type TriggerSOSRequest struct {
	Lat      *float64 `json:"lat" binding:"required"`
	Lng      *float64 `json:"lng" binding:"required"`
	Contacts []string `json:"contacts" binding:"required,min=1,dive,required"`
}
