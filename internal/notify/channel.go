package notify

import "context"

// Result reports the outcome of a single delivery attempt. Ordinary provider
// rejections and network faults are reported via Success=false, never as a
// Go error, so callers can fold failures into partial-success accounting.
type Result struct {
	Success    bool
	ProviderID string
	Err        string
}

// Channel is an outbound messaging provider. Implementations must bound each
// send with a timeout so one unreachable recipient cannot stall a dispatch.
type Channel interface {
	Send(ctx context.Context, recipient, body string) Result
}
