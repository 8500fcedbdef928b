package database

import (
	"fmt"
	"strings"

	"github.com/example/puntosbot/pkg/models"
)

// FactRepository handles database operations for trivia facts
type FactRepository struct{}

// NewFactRepository creates a new repository instance
func NewFactRepository() *FactRepository {
	return &FactRepository{}
}

// Create stores a new fact.
func (r *FactRepository) Create(text string) error {
	query := "INSERT INTO facts (text) VALUES (?)"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	if _, err := DB.Exec(query, text); err != nil {
		return fmt.Errorf("failed to create fact: %v", err)
	}
	return nil
}

// Random samples one fact uniformly at random. sql.ErrNoRows surfaces
// when the collection is empty.
func (r *FactRepository) Random() (*models.Fact, error) {
	var fact models.Fact
	err := DB.QueryRow("SELECT id, text FROM facts ORDER BY RANDOM() LIMIT 1").
		Scan(&fact.ID, &fact.Text)
	if err != nil {
		return nil, err
	}
	return &fact, nil
}

// Delete removes a fact by id. Paired with Random to implement
// consume-once: the read and the delete are two statements, not a
// transaction, so a crash between them can serve a fact twice or lose
// one.
func (r *FactRepository) Delete(id int64) error {
	query := "DELETE FROM facts WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	if _, err := DB.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete fact %d: %v", id, err)
	}
	return nil
}

// Count returns the number of stored facts.
func (r *FactRepository) Count() (int, error) {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM facts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count facts: %v", err)
	}
	return count, nil
}
