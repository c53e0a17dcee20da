package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/golinks/golinks-be/internal/models"
	"github.com/google/uuid"
)

// ShortcutServiceProvider defines the interface for shortcut services. Every
// operation is scoped to the owning user; no call can touch another user's
// shortcuts.
type ShortcutServiceProvider interface {
	GetShortcutsForUser(userID string) ([]models.Shortcut, error)
	CreateShortcut(userID, name, url, description, category string) (models.Shortcut, error)
	UpdateShortcut(userID, shortcutID string, patch models.ShortcutPatch) (models.Shortcut, error)
	DeleteShortcut(userID, shortcutID string) error
	LookupShortcut(userID, name string) (models.Shortcut, bool, error)
}

// ShortcutService provides business logic for the per-user shortcut directory.
type ShortcutService struct {
	db *sql.DB
}

// NewShortcutService creates a new ShortcutService.
func NewShortcutService(db *sql.DB) *ShortcutService {
	return &ShortcutService{db: db}
}

const shortcutColumns = "id, name, url, description, category, user_id, created_at, last_used, usage_count"

// scanShortcut is a helper to scan a shortcut from a row or rows object.
func scanShortcut(scanner interface{ Scan(...interface{}) error }) (models.Shortcut, error) {
	var sc models.Shortcut
	var lastUsed sql.NullTime

	err := scanner.Scan(
		&sc.ID, &sc.Name, &sc.URL, &sc.Description, &sc.Category,
		&sc.UserID, &sc.CreatedAt, &lastUsed, &sc.UsageCount,
	)
	if err != nil {
		return sc, err
	}
	if lastUsed.Valid {
		t := lastUsed.Time
		sc.LastUsed = &t
	}
	return sc, nil
}

// normalizeName lower-cases a shortcut keyword so lookups are case-insensitive.
func normalizeName(name string) string {
	return strings.ToLower(name)
}

// normalizeURL prepends https:// when the URL carries no scheme.
func normalizeURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}

// GetShortcutsForUser retrieves all shortcuts owned by a user, newest first.
func (s *ShortcutService) GetShortcutsForUser(userID string) ([]models.Shortcut, error) {
	rows, err := s.db.Query(
		"SELECT "+shortcutColumns+" FROM shortcuts WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shortcuts []models.Shortcut
	for rows.Next() {
		sc, err := scanShortcut(rows)
		if err != nil {
			return nil, err
		}
		shortcuts = append(shortcuts, sc)
	}
	return shortcuts, rows.Err()
}

// CreateShortcut adds a new shortcut to the user's directory. The duplicate
// check and the insert run in one transaction; the UNIQUE(user_id, name)
// index backs it up at the store level.
func (s *ShortcutService) CreateShortcut(userID, name, url, description, category string) (models.Shortcut, error) {
	if name == "" || url == "" {
		return models.Shortcut{}, ErrMissingFields
	}
	if category == "" {
		category = "general"
	}

	sc := models.Shortcut{
		ID:          uuid.New().String(),
		Name:        normalizeName(name),
		URL:         normalizeURL(url),
		Description: description,
		Category:    category,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Shortcut{}, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM shortcuts WHERE user_id = ? AND name = ?)",
		userID, sc.Name).Scan(&exists)
	if err != nil {
		return models.Shortcut{}, err
	}
	if exists {
		return models.Shortcut{}, ErrShortcutNameTaken
	}

	_, err = tx.Exec(
		`INSERT INTO shortcuts(id, name, url, description, category, user_id, created_at, usage_count)
		 VALUES(?, ?, ?, ?, ?, ?, ?, 0)`,
		sc.ID, sc.Name, sc.URL, sc.Description, sc.Category, sc.UserID, sc.CreatedAt)
	if err != nil {
		return models.Shortcut{}, fmt.Errorf("failed to insert shortcut: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Shortcut{}, err
	}
	return sc, nil
}

// UpdateShortcut applies a partial patch to a shortcut owned by the user.
// Either every provided field applies or none do.
func (s *ShortcutService) UpdateShortcut(userID, shortcutID string, patch models.ShortcutPatch) (models.Shortcut, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Shortcut{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		"SELECT "+shortcutColumns+" FROM shortcuts WHERE id = ? AND user_id = ?",
		shortcutID, userID)
	sc, err := scanShortcut(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Shortcut{}, fmt.Errorf("shortcut %s: %w", shortcutID, ErrNotFound)
		}
		return models.Shortcut{}, err
	}

	if patch.Name != nil {
		newName := normalizeName(*patch.Name)
		var taken bool
		err = tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM shortcuts WHERE user_id = ? AND name = ? AND id != ?)",
			userID, newName, shortcutID).Scan(&taken)
		if err != nil {
			return models.Shortcut{}, err
		}
		if taken {
			return models.Shortcut{}, ErrShortcutNameTaken
		}
		sc.Name = newName
	}
	if patch.URL != nil {
		sc.URL = normalizeURL(*patch.URL)
	}
	if patch.Description != nil {
		sc.Description = *patch.Description
	}
	if patch.Category != nil {
		sc.Category = *patch.Category
	}

	_, err = tx.Exec(
		"UPDATE shortcuts SET name = ?, url = ?, description = ?, category = ? WHERE id = ? AND user_id = ?",
		sc.Name, sc.URL, sc.Description, sc.Category, shortcutID, userID)
	if err != nil {
		return models.Shortcut{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Shortcut{}, err
	}
	return sc, nil
}

// DeleteShortcut removes a shortcut owned by the user. A shortcut that exists
// under a different owner is reported as not found, never deleted.
func (s *ShortcutService) DeleteShortcut(userID, shortcutID string) error {
	res, err := s.db.Exec("DELETE FROM shortcuts WHERE id = ? AND user_id = ?", shortcutID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("shortcut %s: %w", shortcutID, ErrNotFound)
	}
	return nil
}

// LookupShortcut resolves a keyword in the user's directory. A hit bumps
// usage_count and last_used in the same transaction that reads the record
// back; a miss is a (zero, false, nil) result, not an error.
func (s *ShortcutService) LookupShortcut(userID, name string) (models.Shortcut, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Shortcut{}, false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE shortcuts SET last_used = ?, usage_count = usage_count + 1 WHERE user_id = ? AND name = ?",
		time.Now().UTC(), userID, normalizeName(name))
	if err != nil {
		return models.Shortcut{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Shortcut{}, false, err
	}
	if affected == 0 {
		return models.Shortcut{}, false, nil
	}

	row := tx.QueryRow(
		"SELECT "+shortcutColumns+" FROM shortcuts WHERE user_id = ? AND name = ?",
		userID, normalizeName(name))
	sc, err := scanShortcut(row)
	if err != nil {
		return models.Shortcut{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return models.Shortcut{}, false, err
	}
	return sc, true, nil
}
