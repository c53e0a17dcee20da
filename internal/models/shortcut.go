package models

import "time"

// Shortcut maps a per-user keyword to a full URL. The name is stored
// lower-cased and is unique within the owning user's scope only.
type Shortcut struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	UserID      string     `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUsed    *time.Time `json:"lastUsed"`
	UsageCount  int        `json:"usageCount"`
}

// ShortcutPatch carries a partial update; nil fields are left untouched.
type ShortcutPatch struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}
