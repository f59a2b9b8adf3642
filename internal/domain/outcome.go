package domain

import "time"

// Outcome is the audit record of one successful send dispatch. Appended
// exactly once per successful send, never mutated, never removed.
// JSON field names match the wire shape of the history endpoint.
type Outcome struct {
	MessageID int       `json:"message_id"`
	Target    string    `json:"chat_id"`
	Body      string    `json:"text"`
	Kind      MediaKind `json:"type"`
	Time      time.Time `json:"time"` // capture time at dispatch success, not platform send time
}
