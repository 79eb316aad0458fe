package models

// ProbeResult is the outcome of an access-URL reachability check. Network
// failures are folded into Reachable=false with the failure text in
// Detail; the probe never raises to its caller.
type ProbeResult struct {
	Reachable bool   `json:"reachable"`
	Detail    string `json:"detail,omitempty"`
}

// DispatchResult is the outcome of a notification dispatch. Success is
// derived strictly from the gateway HTTP status; there are no retries.
type DispatchResult struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// ReminderRequest asks for an expiration reminder to be sent. Phone and
// Message override the resolved defaults when present.
type ReminderRequest struct {
	SubscriberID string  `json:"subscriber_id" validate:"required"`
	Phone        *string `json:"phone,omitempty"`
	Message      *string `json:"message,omitempty"`
}
