package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/puntosbot/pkg/models"
)

// UserRepository handles database operations for user score records
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = "id, display_name, total_score, last_congratulated, monthly_scores, hours, week"

// scanUser reads one user row, decoding the JSON map columns.
func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	var user models.User
	var monthlyJSON, hoursJSON, weekJSON string

	err := row.Scan(
		&user.ID,
		&user.DisplayName,
		&user.TotalScore,
		&user.LastCongratulated,
		&monthlyJSON,
		&hoursJSON,
		&weekJSON,
	)
	if err != nil {
		return nil, err
	}

	user.MonthlyScores = make(map[string]int)
	user.Hours = make(map[string]int)
	user.Week = make(map[string]int)

	if monthlyJSON != "" {
		if err := json.Unmarshal([]byte(monthlyJSON), &user.MonthlyScores); err != nil {
			return nil, fmt.Errorf("failed to parse monthly scores: %v", err)
		}
	}
	if hoursJSON != "" {
		if err := json.Unmarshal([]byte(hoursJSON), &user.Hours); err != nil {
			return nil, fmt.Errorf("failed to parse hours: %v", err)
		}
	}
	if weekJSON != "" {
		if err := json.Unmarshal([]byte(weekJSON), &user.Week); err != nil {
			return nil, fmt.Errorf("failed to parse week: %v", err)
		}
	}

	return &user, nil
}

// GetByID returns a user by sender identifier. sql.ErrNoRows surfaces
// unwrapped so callers can treat "not found" as "create a new record".
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	return scanUser(DB.QueryRow(query, id))
}

// GetAll returns every user record.
func (r *UserRepository) GetAll() ([]*models.User, error) {
	return r.queryUsers("SELECT " + userColumns + " FROM users ORDER BY id ASC")
}

// TopByTotal returns users ordered by total score descending, ties
// broken by identifier, limited to limit rows (no limit when <= 0).
func (r *UserRepository) TopByTotal(limit int) ([]*models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY total_score DESC, id ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return r.queryUsers(query)
}

// TopForYear returns the frozen snapshot leaderboard for a given year
// table (users_<YYYY>). The caller is expected to have validated the
// year string and probed TableExists first.
func (r *UserRepository) TopForYear(year string, limit int) ([]*models.User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM users_%s ORDER BY total_score DESC, id ASC LIMIT %d",
		userColumns, year, limit,
	)
	return r.queryUsers(query)
}

func (r *UserRepository) queryUsers(query string, args ...interface{}) ([]*models.User, error) {
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %v", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %v", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Save upserts a user record, overwriting every field. There is no
// read-modify-write guard: two near-simultaneous saves for the same
// sender resolve last-write-wins.
func (r *UserRepository) Save(user *models.User) error {
	monthlyJSON, err := json.Marshal(user.MonthlyScores)
	if err != nil {
		return fmt.Errorf("failed to marshal monthly scores: %v", err)
	}
	hoursJSON, err := json.Marshal(user.Hours)
	if err != nil {
		return fmt.Errorf("failed to marshal hours: %v", err)
	}
	weekJSON, err := json.Marshal(user.Week)
	if err != nil {
		return fmt.Errorf("failed to marshal week: %v", err)
	}

	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO users (id, display_name, total_score, last_congratulated, monthly_scores, hours, week)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				display_name = EXCLUDED.display_name,
				total_score = EXCLUDED.total_score,
				last_congratulated = EXCLUDED.last_congratulated,
				monthly_scores = EXCLUDED.monthly_scores,
				hours = EXCLUDED.hours,
				week = EXCLUDED.week,
				updated_at = NOW()
		`
	} else {
		query = `
			INSERT OR REPLACE INTO users (id, display_name, total_score, last_congratulated, monthly_scores, hours, week, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		`
	}

	_, err = DB.Exec(
		query,
		user.ID,
		user.DisplayName,
		user.TotalScore,
		user.LastCongratulated,
		string(monthlyJSON),
		string(hoursJSON),
		string(weekJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %v", user.ID, err)
	}

	return nil
}

// Count returns the number of user records.
func (r *UserRepository) Count() (int, error) {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %v", err)
	}
	return count, nil
}
