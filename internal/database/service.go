package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// User-facing authentication messages, kept in Vietnamese to match the
// report output language.
const (
	MsgEmailTaken      = "Email này đã được đăng ký."
	MsgBadCredentials  = "Sai email hoặc mật khẩu."
	MsgRegisterSuccess = "Đăng ký thành công!"
	MsgLoginSuccess    = "Đăng nhập thành công!"
)

// ErrEmailTaken is returned by Register when the email is already in use.
var ErrEmailTaken = errors.New(MsgEmailTaken)

// ErrBadCredentials is returned by Login for a wrong email or password.
var ErrBadCredentials = errors.New(MsgBadCredentials)

// AuthService provides account registration, login, and session tokens.
type AuthService struct {
	repo      *Repository
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(repo *Repository, jwtSecret string) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates an account with a bcrypt password hash.
func (s *AuthService) Register(email, password, fullName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := NewUser(email, string(hash), fullName)
	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the matching user. A missing user
// and a wrong password report the same error so the response does not leak
// which emails have accounts.
func (s *AuthService) Login(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// GenerateSessionToken generates a JWT token for the user session
func (s *AuthService) GenerateSessionToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(), // 24 hour expiry
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a JWT token and returns the user ID
func (s *AuthService) ValidateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(string)
		if !ok {
			return "", fmt.Errorf("user_id not found in token")
		}
		return userID, nil
	}

	return "", fmt.Errorf("invalid token")
}

// GetUser loads the account behind a validated session.
func (s *AuthService) GetUser(userID string) (*User, error) {
	return s.repo.GetUserByID(userID)
}
