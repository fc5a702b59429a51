package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is an account on the development backend.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// MinPasswordLength is the shortest password accepted for new accounts.
const MinPasswordLength = 8

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin: 2,
		RoleUser:  1,
	}
	return levels[role] >= levels[minimum] && levels[role] > 0
}

// ErrWeakPassword is returned for passwords that fail the policy.
var ErrWeakPassword = errors.New("weak password")

// ValidatePassword checks the admin password policy: at least
// MinPasswordLength characters, without surrounding whitespace.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) != password {
		return fmt.Errorf("%w: leading or trailing whitespace", ErrWeakPassword)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: need at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	return nil
}
