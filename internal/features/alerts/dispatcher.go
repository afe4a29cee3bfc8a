package alerts

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/geo"
	"github.com/xyz-asif/safezone/internal/notify"
	"github.com/xyz-asif/safezone/internal/pkg/logger"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

// AlertStore is the slice of alert persistence the dispatcher needs.
type AlertStore interface {
	Create(ctx context.Context, alert *SOSAlert) error
	UpdateDelivery(ctx context.Context, alert *SOSAlert) error
	FindFailed(ctx context.Context, limit int64) ([]SOSAlert, error)
}

// Dispatcher sends SOS alerts out through a notification channel. Deliveries
// are attempted one recipient at a time, each under its own timeout; a single
// successful delivery is enough to mark the alert sent.
type Dispatcher struct {
	store         AlertStore
	channel       notify.Channel
	policeContact string
	sendTimeout   time.Duration
	log           *logger.Logger
}

func NewDispatcher(store AlertStore, channel notify.Channel, policeContact string, sendTimeout time.Duration, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		store:         store,
		channel:       channel,
		policeContact: policeContact,
		sendTimeout:   sendTimeout,
		log:           log,
	}
}

// Trigger creates an alert, attempts delivery to every contact and to the
// police contact, and persists the outcome. The returned alert reflects what
// was actually delivered; a dispatch where nothing got through comes back
// with status failed, not an error.
func (d *Dispatcher) Trigger(ctx context.Context, userID primitive.ObjectID, userName string, location geo.Point, contacts []string) (*SOSAlert, error) {
	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	if len(contacts) == 0 {
		return nil, fmt.Errorf("%w: at least one contact is required", apperrors.ErrInvalidInput)
	}

	alert := &SOSAlert{
		UserID:           userID,
		UserName:         userName,
		Location:         location,
		Contacts:         contacts,
		ContactsNotified: []string{},
	}
	if err := d.store.Create(ctx, alert); err != nil {
		return nil, err
	}

	d.deliver(ctx, alert)

	if err := d.store.UpdateDelivery(ctx, alert); err != nil {
		return nil, err
	}

	d.log.Info("sos alert %s dispatched status=%s delivered=%d/%d police=%v",
		alert.ID.Hex(), alert.Status, len(alert.ContactsNotified), len(alert.Contacts), alert.PoliceNotified)
	return alert, nil
}

// deliver attempts delivery to every recipient not yet notified and settles
// the alert's status. Safe to call again on a failed alert: already-notified
// recipients are skipped.
func (d *Dispatcher) deliver(ctx context.Context, alert *SOSAlert) {
	body := messageBody(alert)

	for _, contact := range alert.Contacts {
		if alert.Notified(contact) {
			continue
		}
		if d.send(ctx, contact, body) {
			alert.ContactsNotified = append(alert.ContactsNotified, contact)
		}
	}

	if d.policeContact != "" && !alert.PoliceNotified {
		alert.PoliceNotified = d.send(ctx, d.policeContact, "[SafeZone SOS] "+body)
	}

	if len(alert.ContactsNotified) > 0 || alert.PoliceNotified {
		alert.Status = StatusSent
	} else {
		alert.Status = StatusFailed
	}
}

func (d *Dispatcher) send(ctx context.Context, recipient, body string) bool {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	result := d.channel.Send(sendCtx, recipient, body)
	if !result.Success {
		d.log.Warn("sos delivery to %s failed: %s", recipient, result.Err)
	}
	return result.Success
}

func messageBody(alert *SOSAlert) string {
	name := alert.UserName
	if name == "" {
		name = "A SafeZone user"
	}
	return fmt.Sprintf("SOS! %s needs help. Location: https://www.google.com/maps/search/?api=1&query=%v,%v",
		name, alert.Location.Lat(), alert.Location.Lng())
}
