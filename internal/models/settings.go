package models

import "time"

// SettingsID is the fixed identifier of the tenant settings singleton.
const SettingsID = "system_settings"

// DefaultGatewayURL is the messaging-gateway base used until the tenant
// configures its own.
const DefaultGatewayURL = "https://wuzapi.criartebrasil.com.br/api"

// Settings is the tenant-wide singleton: support contact, welcome text and
// the messaging-gateway connection. It is materialized lazily with defaults
// on first read and passed explicitly into the services that need it.
type Settings struct {
	ID              string    `json:"id"`
	SupportPhone    string    `json:"support_phone"`
	WelcomeMessage  string    `json:"welcome_message"`
	GatewayEnabled  bool      `json:"gateway_enabled"`
	GatewayURL      string    `json:"gateway_url"`
	GatewayInstance string    `json:"gateway_instance"`
	GatewayToken    string    `json:"gateway_token"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSettings returns the record materialized on first read.
func DefaultSettings() *Settings {
	return &Settings{
		ID:         SettingsID,
		GatewayURL: DefaultGatewayURL,
		UpdatedAt:  time.Now().UTC(),
	}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	SupportPhone    *string `json:"support_phone,omitempty"`
	WelcomeMessage  *string `json:"welcome_message,omitempty"`
	GatewayEnabled  *bool   `json:"gateway_enabled,omitempty"`
	GatewayURL      *string `json:"gateway_url,omitempty"`
	GatewayInstance *string `json:"gateway_instance,omitempty"`
	GatewayToken    *string `json:"gateway_token,omitempty"`
}
