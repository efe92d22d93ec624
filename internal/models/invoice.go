package models

// CustomerDetails is optional buyer information attached to an invoice.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxID   string `json:"taxId"`
}

// CompanySettings describes the selling party as printed on invoices.
type CompanySettings struct {
	Name          string  `json:"companyName"`
	Address       string  `json:"companyAddress"`
	Phone         string  `json:"companyPhone"`
	Email         string  `json:"companyEmail"`
	TaxRate       float64 `json:"taxRate"`
	InvoicePrefix string  `json:"invoicePrefix"`
	Terms         string  `json:"terms"`
}

// Invoice is a read-only projection of a Transaction with billing metadata.
// It has no identity beyond its source transaction.
type Invoice struct {
	Number   string          `json:"number"`
	Date     string          `json:"date"`
	Customer CustomerDetails `json:"customer"`
	Company  CompanySettings `json:"company"`
	Sale     Transaction     `json:"sale"`
}
