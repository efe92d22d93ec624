package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/rfid-pos/internal/http"
	handler "github.com/rogerio-castellano/rfid-pos/internal/http/handlers"
	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/checkout", nil, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", w.Code)
	}
}

func TestCheckoutHandler_Success(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})
	createProduct(r, handler.ProductRequest{TagID: "RFID002", Name: "Mouse", Code: "SKU2", Price: 5.00})
	scanTag(r, "RFID001")
	scanTag(r, "RFID002")

	w := doJSON(r, http.MethodPost, "/checkout",
		handler.CheckoutRequest{Customer: models.CustomerDetails{Name: "Ada Lovelace"}}, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.CheckoutResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Transaction.Subtotal != 15.99 {
		t.Errorf("expected subtotal 15.99, got %v", resp.Transaction.Subtotal)
	}
	if resp.Transaction.TaxAmount != 1.36 {
		t.Errorf("expected tax 1.36, got %v", resp.Transaction.TaxAmount)
	}
	if resp.Transaction.Total != 17.35 {
		t.Errorf("expected total 17.35, got %v", resp.Transaction.Total)
	}
	if !strings.HasPrefix(resp.Invoice.Number, "INV-") {
		t.Errorf("expected invoice number with INV- prefix, got %q", resp.Invoice.Number)
	}
	if resp.Invoice.Customer.Name != "Ada Lovelace" {
		t.Errorf("expected customer on invoice, got %q", resp.Invoice.Customer.Name)
	}

	// The cart is empty and the tags are disabled afterwards.
	var cart handler.CartResponse
	w = doJSON(r, http.MethodGet, "/cart", nil, adminToken)
	json.NewDecoder(w.Body).Decode(&cart)
	if cart.Count != 0 {
		t.Errorf("expected empty cart after checkout, got %d", cart.Count)
	}
}

func TestCheckoutHandler_WalkInDefault(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})
	scanTag(r, "RFID001")

	w := doJSON(r, http.MethodPost, "/checkout", nil, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.CheckoutResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Invoice.Customer.Name != "Walk-in Customer" {
		t.Errorf("expected walk-in default, got %q", resp.Invoice.Customer.Name)
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{TagID: "RFID001", Name: "Laptop", Code: "SKU1", Price: 10.99})
	scanTag(r, "RFID001")
	doJSON(r, http.MethodPost, "/checkout", nil, adminToken)

	w := doJSON(r, http.MethodGet, "/transactions", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var transactions []models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&transactions); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}

	w = doJSON(r, http.MethodGet, "/transactions/"+transactions[0].ID, nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 OK for lookup, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/transactions/nope", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown transaction, got %d", w.Code)
	}
}

func TestKillPolicyHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPut, "/settings/kill-policy",
		handler.KillPolicyRequest{KillAfterSale: true, KillPassword: "a1b2c3d4"}, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	s := terminal.Settings()
	if !s.KillAfterSale || s.KillPassword != "a1b2c3d4" {
		t.Errorf("unexpected settings: %+v", s)
	}
}

func TestKillPolicyHandler_Forbidden(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPut, "/settings/kill-policy",
		handler.KillPolicyRequest{KillAfterSale: true}, cashierToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}
}

func TestKillPolicyHandler_BadPassword(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPut, "/settings/kill-policy",
		handler.KillPolicyRequest{KillAfterSale: true, KillPassword: "not-hex!"}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed password, got %d", w.Code)
	}
}
