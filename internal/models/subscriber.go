// Package models contains the domain records for the panel: subscribers,
// delivery endpoints, payments, tenant settings and message templates,
// plus the request/patch types used by the HTTP layer.
package models

import "time"

// Subscriber is an end customer holding access credentials and a paid
// validity window. AccessURL is always derived from the current endpoint
// URL, username and password; it is rebuilt on every relevant change and
// never edited on its own.
type Subscriber struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	EndpointID string     `json:"endpoint_id"`
	Name       *string    `json:"name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	MACAddress *string    `json:"mac_address,omitempty"`
	AccessURL  string     `json:"access_url"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	// LegacyExpireDate carries the schema-v1 expiry column. It is only
	// read, never written; UpgradeSchema folds it into ExpiresAt.
	LegacyExpireDate *time.Time `json:"-"`
	Active           bool       `json:"active"`
	PIN              string     `json:"pin"`
	PlanPrice        *float64   `json:"plan_price,omitempty"`
	PayURL           *string    `json:"pay_url,omitempty"`
	// Expired is computed against the query clock on every read,
	// independent of the administrative Active flag. Not persisted.
	Expired bool `json:"expired"`
}

// UpgradeSchema migrates a stored subscriber row to the current in-memory
// representation. Schema v1 rows carry expire_date instead of expires_at;
// v2 rows carry expires_at. Stored data is not rewritten.
func (s *Subscriber) UpgradeSchema() {
	if s.ExpiresAt.IsZero() && s.LegacyExpireDate != nil {
		s.ExpiresAt = *s.LegacyExpireDate
	}
}

// Classify sets the derived Expired flag for the given moment.
func (s *Subscriber) Classify(now time.Time) {
	s.Expired = s.ExpiresAt.Before(now.UTC())
}

// SubscriberCreateRequest is the JSON payload for creating a subscriber.
// ExpiresAt comes as an RFC 3339 string and is parsed before use.
type SubscriberCreateRequest struct {
	Username   string   `json:"username" validate:"required"`
	Password   string   `json:"password" validate:"required"`
	EndpointID string   `json:"endpoint_id" validate:"required"`
	Name       *string  `json:"name,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	MACAddress *string  `json:"mac_address,omitempty"`
	ExpiresAt  string   `json:"expires_at" validate:"required"`
	PIN        *string  `json:"pin,omitempty"`
	PlanPrice  *float64 `json:"plan_price,omitempty"`
	PayURL     *string  `json:"pay_url,omitempty"`
}

// SubscriberPatch is a partial update: present-and-non-nil fields override,
// absent fields leave the stored value untouched. When Username, Password
// or EndpointID is present the access URL is rebuilt from the merged view.
type SubscriberPatch struct {
	Username   *string  `json:"username,omitempty"`
	Password   *string  `json:"password,omitempty"`
	EndpointID *string  `json:"endpoint_id,omitempty"`
	Name       *string  `json:"name,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	MACAddress *string  `json:"mac_address,omitempty"`
	ExpiresAt  *string  `json:"expires_at,omitempty"`
	Active     *bool    `json:"active,omitempty"`
	PIN        *string  `json:"pin,omitempty"`
	PlanPrice  *float64 `json:"plan_price,omitempty"`
	PayURL     *string  `json:"pay_url,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p SubscriberPatch) Empty() bool {
	return p.Username == nil && p.Password == nil && p.EndpointID == nil &&
		p.Name == nil && p.Phone == nil && p.MACAddress == nil &&
		p.ExpiresAt == nil && p.Active == nil && p.PIN == nil &&
		p.PlanPrice == nil && p.PayURL == nil
}

// TouchesCredentials reports whether the patch changes any of the three
// access-URL inputs.
func (p SubscriberPatch) TouchesCredentials() bool {
	return p.Username != nil || p.Password != nil || p.EndpointID != nil
}

// PortalView is the public self-service view for a subscriber: own record,
// the endpoint it points at, payment history and the tenant support contact.
type PortalView struct {
	Subscriber   *Subscriber `json:"subscriber"`
	Endpoint     *Endpoint   `json:"endpoint,omitempty"`
	Payments     []*Payment  `json:"payments"`
	SupportPhone string      `json:"support_phone"`
}
