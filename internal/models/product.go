package models

// Tag lifecycle states. A tag is created active and is disabled exactly once,
// when the item it is attached to is sold.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// Product represents a single tagged item in the catalog. One physical item
// carries one RFID tag, so there is no quantity field.
type Product struct {
	TagID     string  `json:"rfidTag"`
	Name      string  `json:"productName"`
	Code      string  `json:"productCode"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Status    string  `json:"rfidStatus"`
	CreatedAt string  `json:"createdAt"`
}

// Available reports whether the product can still be scanned into a cart.
func (p Product) Available() bool {
	return p.Status == StatusActive
}
