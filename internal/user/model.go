package user

import (
	"net/http"
	"time"

	"github.com/hoardspace/bms-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusBadRequest, "email already registered")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "user account is disabled")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 6 characters long")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
)

// Role determines the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	Address      *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Name     string
	Role     string
	IsActive *bool // Pointer to distinguish between false and not set

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
