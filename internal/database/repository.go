package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user. Employee codes are random, so a primary key
// collision regenerates the code and retries a few times before giving up.
func (r *Repository) CreateUser(user *User) error {
	stmt, err := r.db.GetPreparedStatement("insert_user")
	if err != nil {
		return err
	}

	for attempt := 0; attempt < 5; attempt++ {
		_, err = stmt.Exec(
			user.ID, user.Email, user.PasswordHash, user.FullName,
			user.Role, user.Department, user.Avatar, user.CreatedAt, user.UpdatedAt,
		)
		if err == nil {
			return nil
		}
		if strings.Contains(err.Error(), "users.email") {
			return ErrDuplicateEmail
		}
		if strings.Contains(err.Error(), "users.id") {
			user.ID = newEmployeeCode()
			continue
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return fmt.Errorf("failed to create user: %w", err)
}

// GetUserByEmail finds a user by email address.
func (r *Repository) GetUserByEmail(email string) (*User, error) {
	stmt, err := r.db.GetPreparedStatement("get_user_by_email")
	if err != nil {
		return nil, err
	}

	var user User
	err = stmt.QueryRow(email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Role, &user.Department, &user.Avatar, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &user, nil
}

// GetUserByID finds a user by id.
func (r *Repository) GetUserByID(id string) (*User, error) {
	stmt, err := r.db.GetPreparedStatement("get_user_by_id")
	if err != nil {
		return nil, err
	}

	var user User
	err = stmt.QueryRow(id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Role, &user.Department, &user.Avatar, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return &user, nil
}

// SaveEvaluation persists an evaluation snapshot.
func (r *Repository) SaveEvaluation(eval *Evaluation) error {
	stmt, err := r.db.GetPreparedStatement("insert_evaluation")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		eval.ID, eval.UserID, eval.EmployeeName, eval.EmployeeID,
		eval.Position, eval.Department, eval.ReportDate, eval.Period,
		eval.RatingsJSON, eval.ResultJSON, eval.CreatedAt, eval.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}

	return nil
}

// GetEvaluation fetches one evaluation owned by the given user.
func (r *Repository) GetEvaluation(id, userID string) (*Evaluation, error) {
	stmt, err := r.db.GetPreparedStatement("get_evaluation")
	if err != nil {
		return nil, err
	}

	var eval Evaluation
	err = stmt.QueryRow(id, userID).Scan(
		&eval.ID, &eval.UserID, &eval.EmployeeName, &eval.EmployeeID,
		&eval.Position, &eval.Department, &eval.ReportDate, &eval.Period,
		&eval.RatingsJSON, &eval.ResultJSON, &eval.CreatedAt, &eval.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation: %w", err)
	}

	return &eval, nil
}

// ListEvaluations returns the user's saved evaluations, newest first.
func (r *Repository) ListEvaluations(userID string, limit int) ([]*Evaluation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	stmt, err := r.db.GetPreparedStatement("list_evaluations")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	evals := make([]*Evaluation, 0, limit)
	for rows.Next() {
		var eval Evaluation
		if err := rows.Scan(
			&eval.ID, &eval.UserID, &eval.EmployeeName, &eval.EmployeeID,
			&eval.Position, &eval.Department, &eval.ReportDate, &eval.Period,
			&eval.RatingsJSON, &eval.ResultJSON, &eval.CreatedAt, &eval.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evals = append(evals, &eval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluations: %w", err)
	}

	return evals, nil
}

// DeleteEvaluation removes an evaluation owned by the given user.
func (r *Repository) DeleteEvaluation(id, userID string) error {
	stmt, err := r.db.GetPreparedStatement("delete_evaluation")
	if err != nil {
		return err
	}

	res, err := stmt.Exec(id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// PurgeOldEvaluations deletes evaluations older than the retention window
// and returns how many rows were removed.
func (r *Repository) PurgeOldEvaluations(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	res, err := r.db.Exec(`DELETE FROM evaluations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge evaluations: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check purge result: %w", err)
	}

	return affected, nil
}
