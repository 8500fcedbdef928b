package database

import (
	"fmt"
	"strings"

	"github.com/example/puntosbot/pkg/models"
)

// SessionRepository persists opaque client state blobs keyed by a fixed
// session id.
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Get loads the blob for a session id. sql.ErrNoRows surfaces when no
// session has been saved yet.
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := "SELECT id, data, updated_at FROM sessions WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	var session models.Session
	var data string
	err := DB.QueryRow(query, id).Scan(&session.ID, &data, &session.UpdatedAt)
	if err != nil {
		return nil, err
	}
	session.Data = []byte(data)
	return &session, nil
}

// Save overwrites the session blob wholesale.
func (r *SessionRepository) Save(id string, data []byte) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO sessions (id, data, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		`
	} else {
		query = "INSERT OR REPLACE INTO sessions (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)"
	}

	if _, err := DB.Exec(query, id, string(data)); err != nil {
		return fmt.Errorf("failed to save session %s: %v", id, err)
	}
	return nil
}
