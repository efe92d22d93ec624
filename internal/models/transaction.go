package models

// Transaction is the immutable record of a completed sale. Items are full
// product snapshots taken when the sale was finalized; later catalog edits do
// not reach back into past transactions.
type Transaction struct {
	ID         string    `json:"id"`
	Items      []Product `json:"items"`
	Subtotal   float64   `json:"subtotal"`
	TaxRate    float64   `json:"taxRate"`
	TaxAmount  float64   `json:"taxAmount"`
	Total      float64   `json:"total"`
	Timestamp  string    `json:"date"`
	TagsKilled bool      `json:"tagsKilled"`
}

// TagIDs returns the tags of the sold items, in sale order.
func (t Transaction) TagIDs() []string {
	tags := make([]string, len(t.Items))
	for i, item := range t.Items {
		tags[i] = item.TagID
	}
	return tags
}
