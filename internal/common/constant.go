// Package common contains shared constants and small helpers used across
// the Fusion client components.
package common

const (
	// TokenStorageKey is the key under which the session token is
	// persisted in client-side storage.
	TokenStorageKey = "fusion_token"

	// TokenSavedAtKey records when the session token was last written.
	TokenSavedAtKey = "fusion_token_saved_at"

	// RequestIDHeaderName is attached to every outbound API request so
	// client and backend logs can be correlated.
	RequestIDHeaderName = "X-Request-ID"
)
