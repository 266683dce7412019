package audit

import "context"

// Sink delivers audit events to a downstream destination (SQS, HTTP, etc).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, evt Event) error
}
