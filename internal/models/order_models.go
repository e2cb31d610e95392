package models

import "time"

// CustomerDetails carries the fulfillment fields collected at checkout.
// Which fields are required depends on the order type; the rest stay empty.
type CustomerDetails struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	TableNumber string `json:"table_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Landmark    string `json:"landmark,omitempty"`
	PickupTime  string `json:"pickup_time,omitempty"`
}

// Order is a finalized submission. Items holds the flattened human-readable
// line descriptions built at checkout time.
type Order struct {
	ID              int64           `json:"id"`
	OrderType       string          `json:"order_type"`
	PaymentMethod   string          `json:"payment_method"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	Items           []string        `json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderBackup is the locally-mirrored copy of a submitted order kept in the
// session store as a resilience fallback, independent of the database write.
type OrderBackup struct {
	Order
	LocalID   int64     `json:"local_id"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderFilters defines the available filters for the admin order listing.
type OrderFilters struct {
	Status   *string `form:"status"`
	Date     *string `form:"date"` // YYYY-MM-DD
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
