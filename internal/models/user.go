package models

import "time"

// User represents a registered account in the directory.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`

	// ShortcutCount is computed from the shortcuts table, not stored.
	ShortcutCount int `json:"shortcutCount"`
}
