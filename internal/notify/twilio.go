package notify

import (
	"context"
	"time"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioChannel sends SMS through the Twilio REST API.
type TwilioChannel struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioChannel creates an SMS channel. The timeout applies to every
// individual send.
func NewTwilioChannel(accountSID, authToken, from string, timeout time.Duration) *TwilioChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.SetTimeout(timeout)

	return &TwilioChannel{
		client: client,
		from:   from,
	}
}

// Send delivers one SMS. The Twilio SDK does not take a context; the
// per-send timeout is enforced by the underlying HTTP client instead.
func (t *TwilioChannel) Send(_ context.Context, recipient, body string) Result {
	params := &openapi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(t.from)
	params.SetBody(body)

	msg, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}

	res := Result{Success: true}
	if msg.Sid != nil {
		res.ProviderID = *msg.Sid
	}
	return res
}
