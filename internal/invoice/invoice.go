// Package invoice projects finalized transactions into billing documents.
// Rendering and printing happen elsewhere; nothing here mutates state.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

// Build derives an invoice from a completed sale plus billing metadata. The
// invoice has no identity of its own: rebuilding it from the same transaction
// yields the same number.
func Build(t models.Transaction, customer models.CustomerDetails, company models.CompanySettings) models.Invoice {
	if customer.Name == "" {
		customer.Name = "Walk-in Customer"
	}
	prefix := company.InvoicePrefix
	if prefix == "" {
		prefix = "INV"
	}
	return models.Invoice{
		Number:   fmt.Sprintf("%s-%s", prefix, numberSuffix(t)),
		Date:     t.Timestamp,
		Customer: customer,
		Company:  company,
		Sale:     t,
	}
}

// numberSuffix gives a stable 8-character suffix derived from the sale.
func numberSuffix(t models.Transaction) string {
	if ts, err := time.Parse(time.RFC3339, t.Timestamp); err == nil {
		return fmt.Sprintf("%08d", ts.UnixMilli()%100000000)
	}
	id := strings.ToUpper(strings.ReplaceAll(t.ID, "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}
