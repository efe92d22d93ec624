package auth

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const refreshTokenFile = "refresh_tokens.json"

const refreshTokenTTL = 7 * 24 * time.Hour

type refreshEntry struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	refreshTokenStore = map[string]refreshEntry{}
	loaded            bool
	mu                sync.Mutex
)

// IssueRefreshToken creates a long-lived opaque token for the user.
func IssueRefreshToken(username string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	ensureLoaded()
	token := uuid.NewString()
	refreshTokenStore[token] = refreshEntry{
		Username:  username,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	return token, saveRefreshTokens()
}

// ValidateRefreshToken returns the owning username if the token is known and
// unexpired.
func ValidateRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()

	ensureLoaded()
	entry, ok := refreshTokenStore[token]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Username, true
}

// RevokeRefreshToken removes a token; unknown tokens are a no-op.
func RevokeRefreshToken(token string) {
	mu.Lock()
	defer mu.Unlock()

	ensureLoaded()
	if _, ok := refreshTokenStore[token]; !ok {
		return
	}
	delete(refreshTokenStore, token)
	if err := saveRefreshTokens(); err != nil {
		log.Printf("Failed to save refresh tokens: %v", err)
	}
}

// StartRefreshTokenCleaner drops expired tokens on an interval.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)

		mu.Lock()
		ensureLoaded()
		now := time.Now()
		removed := 0
		for token, entry := range refreshTokenStore {
			if now.After(entry.ExpiresAt) {
				delete(refreshTokenStore, token)
				removed++
			}
		}
		if removed > 0 {
			if err := saveRefreshTokens(); err != nil {
				log.Printf("Failed to save refresh tokens: %v", err)
			}
		}
		mu.Unlock()
	}
}

func ensureLoaded() {
	if loaded {
		return
	}
	loaded = true
	if err := loadRefreshTokens(); err != nil {
		log.Printf("Error loading refresh token file: %v", err)
	}
}

func loadRefreshTokens() error {
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			refreshTokenStore = map[string]refreshEntry{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &refreshTokenStore)
}

func saveRefreshTokens() error {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(refreshTokenFile, data, 0600)
}
