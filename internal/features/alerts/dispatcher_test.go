package alerts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/geo"
	"github.com/xyz-asif/safezone/internal/notify"
	"github.com/xyz-asif/safezone/internal/pkg/logger"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

// fakeChannel delivers to every recipient except those listed in failing,
// and counts sends per recipient.
type fakeChannel struct {
	failing map[string]bool
	sends   map[string]int
	bodies  map[string]string
}

func newFakeChannel(failing ...string) *fakeChannel {
	f := &fakeChannel{
		failing: map[string]bool{},
		sends:   map[string]int{},
		bodies:  map[string]string{},
	}
	for _, r := range failing {
		f.failing[r] = true
	}
	return f
}

func (f *fakeChannel) Send(_ context.Context, recipient, body string) notify.Result {
	f.sends[recipient]++
	f.bodies[recipient] = body
	if f.failing[recipient] {
		return notify.Result{Success: false, Err: "provider rejected"}
	}
	return notify.Result{Success: true, ProviderID: "msg-" + recipient}
}

// fakeStore keeps alerts in memory.
type fakeStore struct {
	alerts map[primitive.ObjectID]SOSAlert
}

func newFakeStore() *fakeStore {
	return &fakeStore{alerts: map[primitive.ObjectID]SOSAlert{}}
}

func (f *fakeStore) Create(_ context.Context, alert *SOSAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.Status = StatusPending
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = time.Now()
	f.alerts[alert.ID] = *alert
	return nil
}

func (f *fakeStore) UpdateDelivery(_ context.Context, alert *SOSAlert) error {
	alert.UpdatedAt = time.Now()
	f.alerts[alert.ID] = *alert
	return nil
}

func (f *fakeStore) FindFailed(_ context.Context, limit int64) ([]SOSAlert, error) {
	var result []SOSAlert
	for _, a := range f.alerts {
		if a.Status == StatusFailed && int64(len(result)) < limit {
			result = append(result, a)
		}
	}
	return result, nil
}

func newTestDispatcher(store AlertStore, channel notify.Channel, police string) *Dispatcher {
	return NewDispatcher(store, channel, police, time.Second, logger.New(logger.ERROR))
}

func TestDispatcher_AllDelivered(t *testing.T) {
	store := newFakeStore()
	channel := newFakeChannel()
	d := newTestDispatcher(store, channel, "+1100")

	alert, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(28.6139, 77.2090), []string{"+1111", "+1222"})
	require.NoError(t, err)

	require.Equal(t, StatusSent, alert.Status)
	require.Equal(t, []string{"+1111", "+1222"}, alert.ContactsNotified)
	require.True(t, alert.PoliceNotified)
	require.Equal(t, StatusSent, store.alerts[alert.ID].Status)
}

func TestDispatcher_PartialSuccess(t *testing.T) {
	store := newFakeStore()
	channel := newFakeChannel("+1222")
	d := newTestDispatcher(store, channel, "")

	alert, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(28.6139, 77.2090), []string{"+1111", "+1222", "+1333"})
	require.NoError(t, err)

	require.Equal(t, StatusSent, alert.Status)
	require.Equal(t, []string{"+1111", "+1333"}, alert.ContactsNotified)
	// the requested list stays intact for later retries
	require.Equal(t, []string{"+1111", "+1222", "+1333"}, alert.Contacts)
	require.False(t, alert.PoliceNotified)
}

func TestDispatcher_AllFail(t *testing.T) {
	store := newFakeStore()
	channel := newFakeChannel("+1111", "+1222", "+1100")
	d := newTestDispatcher(store, channel, "+1100")

	alert, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(28.6139, 77.2090), []string{"+1111", "+1222"})
	require.NoError(t, err)

	require.Equal(t, StatusFailed, alert.Status)
	require.Empty(t, alert.ContactsNotified)
	require.Equal(t, []string{"+1111", "+1222"}, alert.Contacts)
	require.False(t, alert.PoliceNotified)
}

func TestDispatcher_PoliceOnlySuccessCountsAsSent(t *testing.T) {
	store := newFakeStore()
	channel := newFakeChannel("+1111")
	d := newTestDispatcher(store, channel, "+1100")

	alert, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(28.6139, 77.2090), []string{"+1111"})
	require.NoError(t, err)

	require.Equal(t, StatusSent, alert.Status)
	require.Empty(t, alert.ContactsNotified)
	require.True(t, alert.PoliceNotified)
}

func TestDispatcher_MessageFormat(t *testing.T) {
	store := newFakeStore()
	channel := newFakeChannel()
	d := newTestDispatcher(store, channel, "+1100")

	_, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(28.6139, 77.2090), []string{"+1111"})
	require.NoError(t, err)

	body := channel.bodies["+1111"]
	require.Contains(t, body, "SOS! Priya needs help.")
	require.Contains(t, body, "https://www.google.com/maps/search/?api=1&query=28.6139,77.209")

	police := channel.bodies["+1100"]
	require.True(t, strings.HasPrefix(police, "[SafeZone SOS] "))
	require.Contains(t, police, body)
}

func TestDispatcher_InvalidLocation(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(store, newFakeChannel(), "+1100")

	_, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(91, 0), []string{"+1111"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	require.Empty(t, store.alerts)
}

func TestDispatcher_NoContacts(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(store, newFakeChannel(), "+1100")

	_, err := d.Trigger(context.Background(), primitive.NewObjectID(), "Priya",
		geo.NewPoint(28.6139, 77.2090), nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	require.Empty(t, store.alerts)
}
