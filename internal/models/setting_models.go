package models

import "time"

// PaymentMethod is an admin-configured way to pay, displayed with static
// account details and an optional QR code. The fixed "Cash/COD" option is
// not stored; it always exists alongside these.
type PaymentMethod struct {
	ID            string  `json:"id"`
	Name          string  `json:"name" binding:"required"`
	AccountName   *string `json:"account_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	QRURL         *string `json:"qr_url,omitempty"`
	IsActive      bool    `json:"is_active"`
}

// OrderTypeOption is a fulfillment channel offered at checkout. The
// built-ins are dine-in, pickup and delivery; admins may add custom ones.
type OrderTypeOption struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	IsActive bool   `json:"is_active"`
}

// Built-in order type identifiers.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// StoreSettings is the single-row store configuration: branding, contact
// details and displayed opening hours.
type StoreSettings struct {
	ID           int64     `json:"id"`
	StoreName    *string   `json:"store_name,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Contact      *string   `json:"contact,omitempty"`
	OpenTime     *string   `json:"open_time,omitempty"`
	CloseTime    *string   `json:"close_time,omitempty"`
	ManualStatus *string   `json:"manual_status,omitempty"`
	LogoURL      *string   `json:"logo_url,omitempty"`
	BannerImages []string  `json:"banner_images"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewNullString is a helper for string pointers, returning nil if the
// string is empty. Useful for optional fields stored as NULL.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
