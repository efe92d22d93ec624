package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/rfid-pos/internal/pos"
)

// ScanHandler submits a tag ID directly, bypassing the input classifier.
func ScanHandler(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.TagID) == "" {
		http.Error(w, "RFID tag is required", http.StatusBadRequest)
		return
	}

	source := pos.SourceManual
	if req.Source != "" {
		switch src := pos.Source(req.Source); src {
		case pos.SourceManual, pos.SourceReader, pos.SourceSerial:
			source = src
		default:
			http.Error(w, "invalid scan source", http.StatusBadRequest)
			return
		}
	}

	result, err := terminal.Scan(req.TagID, source)
	if err != nil {
		http.Error(w, "could not process scan", http.StatusInternalServerError)
		return
	}

	resp := ScanResponse{
		Outcome: result.Outcome.String(),
		TagID:   result.TagID,
	}
	if result.Outcome == pos.ScanAdded {
		pr := toProductResponse(result.Product)
		resp.Product = &pr
	}

	status := http.StatusOK
	if result.Outcome == pos.ScanNotFound {
		status = http.StatusNotFound
	}
	if err := writeJSON(w, status, resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// ScanInputHandler feeds the scan field contents into the classifier. A burst
// of characters auto-submits after the quiescence window; manual typing waits
// for an explicit confirm.
func ScanInputHandler(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	classifier.Input(req.Value)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"mode": classifier.Mode().String()})
}

// ScanConfirmHandler submits whatever is pending in the scan field, in
// whichever mode the classifier decided.
func ScanConfirmHandler(w http.ResponseWriter, r *http.Request) {
	classifier.Confirm()
	w.WriteHeader(http.StatusNoContent)
}

func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	items := terminal.CartItems()
	resp := CartResponse{
		Items: toProductResponses(items),
		Count: len(items),
		Total: terminal.CartTotal(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	terminal.ClearCart()
	w.WriteHeader(http.StatusNoContent)
}
