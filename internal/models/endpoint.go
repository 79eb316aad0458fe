package models

import "time"

// Endpoint is a content-delivery base address subscriber playlists point
// at. Deactivating or deleting one does not cascade to subscribers; the
// reference is only checked when a subscriber is created or re-pointed.
type Endpoint struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// EndpointCreateRequest is the JSON payload for registering an endpoint.
type EndpointCreateRequest struct {
	Title  string `json:"title" validate:"required"`
	URL    string `json:"url" validate:"required,url"`
	Active *bool  `json:"active,omitempty"`
}

// EndpointPatch is a partial update; nil fields are left untouched.
type EndpointPatch struct {
	Title  *string `json:"title,omitempty"`
	URL    *string `json:"url,omitempty"`
	Active *bool   `json:"active,omitempty"`
}
