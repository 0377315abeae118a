package product

import "time"

// Product represents a row in the products table. JSON field names preserve
// the contract the mobile client already speaks.
type Product struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"namaProduct"`
	Value     string    `json:"valueProduct"`
	CreatedAt time.Time `json:"createdAt"`
}
