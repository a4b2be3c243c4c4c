package models

import "strings"

// GeneralCustomerID is the walk-in customer used when a sale names nobody.
const GeneralCustomerID int64 = 1

// Customer is a sale counterpart.
type Customer struct {
	ID        int64  `bson:"_id" json:"id"`
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Email     string `bson:"email" json:"email,omitempty"`
	Phone     string `bson:"phone" json:"phone,omitempty"`
	Address   string `bson:"address" json:"address,omitempty"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Supplier is a purchase counterpart.
type Supplier struct {
	ID          int64  `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	ContactName string `bson:"contact_name" json:"contactName,omitempty"`
	Phone       string `bson:"phone" json:"phone,omitempty"`
	Email       string `bson:"email" json:"email,omitempty"`
}
