package audit

import "time"

// Event records one mutating administrative action performed against the
// management API.
type Event struct {
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	Username   string    `json:"username,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Success    bool      `json:"success"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent constructs an Event for the given action + resource.
func NewEvent(action, resource string, success bool) Event {
	return Event{
		Action:     action,
		Resource:   resource,
		Success:    success,
		OccurredAt: time.Now().UTC(),
	}
}
