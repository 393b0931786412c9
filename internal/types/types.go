package types

import "kpireview/internal/scoring"

// ScoreRequest carries one full set of item ratings for a scoring run.
type ScoreRequest struct {
	Ratings scoring.Ratings `json:"ratings" binding:"required"`
	Period  string          `json:"period"`
}

// ReportRequest asks for a rendered evaluation report for an employee.
type ReportRequest struct {
	Employee scoring.EmployeeInfo `json:"employee" binding:"required"`
	Ratings  scoring.Ratings      `json:"ratings" binding:"required"`
	Period   string               `json:"period"`
}

// SaveEvaluationRequest persists a completed evaluation for later review.
type SaveEvaluationRequest struct {
	Employee scoring.EmployeeInfo `json:"employee" binding:"required"`
	Ratings  scoring.Ratings      `json:"ratings" binding:"required"`
	Period   string               `json:"period"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
