package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account that can save evaluations.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	Department   string    `json:"department" db:"department"`
	Avatar       string    `json:"avatar,omitempty" db:"avatar"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Evaluation is a persisted scoring run: the employee snapshot, the raw
// ratings that were submitted, and the computed result, both stored as JSON.
type Evaluation struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	EmployeeName string    `json:"employeeName" db:"employee_name"`
	EmployeeID   string    `json:"employeeId" db:"employee_id"`
	Position     string    `json:"position" db:"position"`
	Department   string    `json:"department" db:"department"`
	ReportDate   string    `json:"reportDate" db:"report_date"`
	Period       string    `json:"period" db:"period"`
	RatingsJSON  string    `json:"ratings" db:"ratings_json"`
	ResultJSON   string    `json:"result" db:"result_json"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new user with a generated employee code.
func NewUser(email, passwordHash, fullName string) *User {
	now := time.Now()
	return &User{
		ID:           newEmployeeCode(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         "Nhân viên",
		Department:   "Phòng Kinh Doanh",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewEvaluation creates a new evaluation record with generated ID.
func NewEvaluation(userID, employeeName, employeeID, position, department, reportDate, period, ratingsJSON, resultJSON string) *Evaluation {
	now := time.Now()
	return &Evaluation{
		ID:           uuid.New().String(),
		UserID:       userID,
		EmployeeName: employeeName,
		EmployeeID:   employeeID,
		Position:     position,
		Department:   department,
		ReportDate:   reportDate,
		Period:       period,
		RatingsJSON:  ratingsJSON,
		ResultJSON:   resultJSON,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// newEmployeeCode generates a human-readable employee code. Account ids are
// displayed on printed reports, so they follow the NV-XXXX convention instead
// of a bare UUID. Uniqueness is still enforced by the primary key; on the
// rare collision the insert fails and the repository retries with a fresh code.
func newEmployeeCode() string {
	return fmt.Sprintf("NV-%04d", 1000+rand.Intn(9000))
}
