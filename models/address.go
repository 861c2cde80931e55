package models

import "time"

const (
	AddressTypeHome   = "home"
	AddressTypeOffice = "office"
	AddressTypeOther  = "other"
)

type Address struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	AddressType  string    `json:"address_type"`
	Label        string    `json:"label"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ShortAddress is the one-line form shown in address pickers.
func (a *Address) ShortAddress() string {
	return a.AddressLine1 + ", " + a.City + ", " + a.State
}
