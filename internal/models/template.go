package models

import "time"

// MessageTemplate is a reusable notification text snippet. Plain CRUD, no
// lifecycle coupling to subscribers.
type MessageTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateCreateRequest is the JSON payload for creating a template.
type TemplateCreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}
