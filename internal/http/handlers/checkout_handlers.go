package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/rfid-pos/internal/invoice"
	"github.com/rogerio-castellano/rfid-pos/internal/pos"
	"github.com/rogerio-castellano/rfid-pos/internal/repo"
)

func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &req); err != nil {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
	}

	transaction, err := terminal.Checkout()
	if err != nil {
		if errors.Is(err, pos.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusBadRequest)
			return
		}
		// Commit failed; the cart is untouched and the operator can retry.
		http.Error(w, "could not complete sale", http.StatusInternalServerError)
		return
	}

	inv := invoice.Build(transaction, req.Customer, company)

	resp := CheckoutResponse{Transaction: transaction, Invoice: inv}
	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	transactions, err := transactionRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch transactions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

func GetTransactionByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "transaction ID is required", http.StatusBadRequest)
		return
	}

	transaction, err := transactionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrTransactionNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch transaction", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transaction)
}

// KillPolicyHandler toggles post-sale tag deactivation and optionally rotates
// the kill password. Admin only.
func KillPolicyHandler(w http.ResponseWriter, r *http.Request) {
	role, err := GetRoleFromContext(r)
	if err != nil || role != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req KillPolicyRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	password := req.KillPassword
	if password == "" {
		password = terminal.Settings().KillPassword
	}
	if !pos.ValidKillPassword(password) {
		http.Error(w, "kill password must be 8 hex characters", http.StatusBadRequest)
		return
	}

	terminal.SetKillPolicy(req.KillAfterSale, password)
	if logs != nil {
		logs.Addf("Kill-after-sale set to %t", req.KillAfterSale)
	}
	w.WriteHeader(http.StatusNoContent)
}
