package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/snapshot"
)

// ExportDataHandler serves the full terminal state as a downloadable JSON
// document: catalog, sales history, and the activity-log tail.
func ExportDataHandler(w http.ResponseWriter, r *http.Request) {
	products, transactions, err := terminal.ExportState()
	if err != nil {
		http.Error(w, "could not export data", http.StatusInternalServerError)
		return
	}

	doc := snapshot.Document{
		Products:     products,
		Transactions: transactions,
		ExportDate:   time.Now().Format(time.RFC3339),
		Version:      snapshot.Version,
	}
	if logs != nil {
		doc.Logs = logs.Tail()
	}

	filename := fmt.Sprintf("pos-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Printf("failed to encode export: %v", err)
	}
}

// ImportDataHandler loads an uploaded backup document into the terminal.
// Admin only. Each collection is replaced only when the document carries it;
// a backup holding just transactions leaves the catalog alone. The in-flight
// cart is discarded.
func ImportDataHandler(w http.ResponseWriter, r *http.Request) {
	role, err := GetRoleFromContext(r)
	if err != nil || role != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var doc snapshot.Document
	if err := readJSON(w, r, &doc); err != nil {
		http.Error(w, "invalid backup document", http.StatusBadRequest)
		return
	}
	if doc.Products == nil && doc.Transactions == nil && doc.Logs == nil {
		http.Error(w, "backup document has no data", http.StatusBadRequest)
		return
	}

	if err := terminal.ImportState(doc.Products, doc.Transactions, doc.Logs); err != nil {
		http.Error(w, "could not import data", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ImportResult{
		ImportedProductsCount:     len(doc.Products),
		ImportedTransactionsCount: len(doc.Transactions),
	})
}
