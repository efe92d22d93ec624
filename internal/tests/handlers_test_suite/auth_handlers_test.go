package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/rfid-pos/internal/http"
	handler "github.com/rogerio-castellano/rfid-pos/internal/http/handlers"
)

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/register",
		handler.UserLogin{Username: "newcashier", Password: "secret123"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token for the new user")
	}
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/register",
		handler.UserLogin{Username: "admin", Password: "secret123"}, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestRegisterHandler_TooShort(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	tests := []handler.UserLogin{
		{Username: "ab", Password: "secret123"},
		{Username: "valid", Password: "short"},
		{},
	}
	for _, creds := range tests {
		w := doJSON(r, http.MethodPost, "/register", creds, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %+v, got %d", creds, w.Code)
		}
	}
}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login",
		handler.UserLogin{Username: "admin", Password: "secret"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected access and refresh tokens")
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	tests := []handler.UserLogin{
		{Username: "admin", Password: "wrong"},
		{Username: "nobody", Password: "secret"},
	}
	for _, creds := range tests {
		w := doJSON(r, http.MethodPost, "/login", creds, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %+v, got %d", creds, w.Code)
		}
	}
}

func TestRefreshHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login",
		handler.UserLogin{Username: "admin", Password: "secret"}, "")
	var login handler.LoginResult
	json.NewDecoder(w.Body).Decode(&login)

	w = doJSON(r, http.MethodPost, "/refresh",
		handler.RefreshRequest{RefreshToken: login.RefreshToken}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var refreshed handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&refreshed); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if refreshed.Token == "" || refreshed.RefreshToken == "" {
		t.Error("expected fresh token pair")
	}

	// The old refresh token was rotated out.
	w = doJSON(r, http.MethodPost, "/refresh",
		handler.RefreshRequest{RefreshToken: login.RefreshToken}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for reused refresh token, got %d", w.Code)
	}
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/refresh",
		handler.RefreshRequest{RefreshToken: "bogus"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/cart", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
