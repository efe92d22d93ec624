package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	api "github.com/rogerio-castellano/rfid-pos/internal/http"
	handler "github.com/rogerio-castellano/rfid-pos/internal/http/handlers"
)

func TestScanHandler_Added(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 999.99})

	w := scanTag(r, "RFID001")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ScanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Outcome != "added" {
		t.Errorf("expected outcome 'added', got %q", resp.Outcome)
	}
	if resp.Product == nil || resp.Product.Name != "Laptop" {
		t.Errorf("expected product in response, got %+v", resp.Product)
	}
}

func TestScanHandler_NotFound(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := scanTag(r, "UNKNOWN")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var resp handler.ScanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Outcome != "not_found" {
		t.Errorf("expected outcome 'not_found', got %q", resp.Outcome)
	}
}

func TestScanHandler_DuplicateAndSold(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 999.99})
	scanTag(r, "RFID001")

	w := scanTag(r, "RFID001")
	var resp handler.ScanResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Outcome != "already_in_cart" {
		t.Errorf("expected 'already_in_cart', got %q", resp.Outcome)
	}

	doJSON(r, http.MethodPost, "/checkout", nil, adminToken)

	w = scanTag(r, "RFID001")
	resp = handler.ScanResponse{}
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Outcome != "already_sold" {
		t.Errorf("expected 'already_sold', got %q", resp.Outcome)
	}
}

func TestScanHandler_MissingTag(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/scan", handler.ScanRequest{}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// The source field is a closed set; anything outside the three known readers
// is rejected rather than recorded verbatim.
func TestScanHandler_InvalidSource(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})

	w := doJSON(r, http.MethodPost, "/scan",
		handler.ScanRequest{TagID: "RFID001", Source: "Telepathy"}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown source, got %d", w.Code)
	}

	// Known sources still pass.
	w = doJSON(r, http.MethodPost, "/scan",
		handler.ScanRequest{TagID: "RFID001", Source: "RFID Reader"}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for known source, got %d", w.Code)
	}
}

func TestGetCartHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})
	createProduct(r, handler.ProductRequest{TagID: "RFID002", Name: "Mouse", Code: "SKU2", Price: 5.00})
	scanTag(r, "RFID001")
	scanTag(r, "RFID002")

	w := doJSON(r, http.MethodGet, "/cart", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 items, got %d", resp.Count)
	}
	if resp.Total != 15.99 {
		t.Errorf("expected total 15.99, got %v", resp.Total)
	}
	if resp.Items[0].TagID != "RFID001" || resp.Items[1].TagID != "RFID002" {
		t.Errorf("expected insertion order preserved, got %+v", resp.Items)
	}
}

func TestClearCartHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})
	scanTag(r, "RFID001")

	w := doJSON(r, http.MethodDelete, "/cart", nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	var resp handler.CartResponse
	w = doJSON(r, http.MethodGet, "/cart", nil, adminToken)
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Count != 0 {
		t.Errorf("expected empty cart, got %d items", resp.Count)
	}

	// Exactly one log entry for the clear.
	cleared := 0
	for _, entry := range logs.All() {
		if strings.Contains(entry, "Cart cleared") {
			cleared++
		}
	}
	if cleared != 1 {
		t.Errorf("expected a single 'Cart cleared' entry, got %d", cleared)
	}
}

func TestScanInput_BurstAutoSubmits(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})

	w := doJSON(r, http.MethodPost, "/scan/input", handler.InputRequest{Value: "RFID001"}, adminToken)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["mode"] != "reader" {
		t.Errorf("expected reader mode for multi-character growth, got %q", resp["mode"])
	}

	// The burst auto-submits after the quiescence window.
	time.Sleep(settleInterval * 4)

	var cart handler.CartResponse
	w = doJSON(r, http.MethodGet, "/cart", nil, adminToken)
	json.NewDecoder(w.Body).Decode(&cart)
	if cart.Count != 1 {
		t.Fatalf("expected auto-submitted scan in cart, got %d items", cart.Count)
	}
}

func TestScanInput_ManualNeedsConfirm(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})

	for _, v := range []string{"R", "RF", "RFI", "RFID", "RFID0", "RFID00", "RFID001"} {
		w := doJSON(r, http.MethodPost, "/scan/input", handler.InputRequest{Value: v}, adminToken)
		var resp map[string]string
		json.NewDecoder(w.Body).Decode(&resp)
		if resp["mode"] != "manual" {
			t.Fatalf("expected manual mode for single-character growth, got %q", resp["mode"])
		}
	}

	time.Sleep(settleInterval * 4)

	var cart handler.CartResponse
	w := doJSON(r, http.MethodGet, "/cart", nil, adminToken)
	json.NewDecoder(w.Body).Decode(&cart)
	if cart.Count != 0 {
		t.Fatal("expected no auto-submission for manual typing")
	}

	w = doJSON(r, http.MethodPost, "/scan/confirm", nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/cart", nil, adminToken)
	cart = handler.CartResponse{}
	json.NewDecoder(w.Body).Decode(&cart)
	if cart.Count != 1 {
		t.Errorf("expected confirmed scan in cart, got %d items", cart.Count)
	}
}
