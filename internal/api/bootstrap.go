package api

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/store"
)

// GeneratedPasswordLength is the length of a generated admin password.
const GeneratedPasswordLength = 16

// EnsureAdmin creates the first admin account when the database has no
// users. An empty password is replaced by a generated one. It reports
// the password in use and whether an account was created; an existing
// user base is left untouched.
func EnsureAdmin(ctx context.Context, db *sql.DB, email, password string) (string, bool, error) {
	n, err := store.CountUsers(ctx, db)
	if err != nil {
		return "", false, err
	}
	if n > 0 {
		return "", false, nil
	}

	if password == "" {
		password, err = generatePassword(GeneratedPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generating password: %w", err)
		}
	}
	if err := model.ValidatePassword(password); err != nil {
		return "", false, fmt.Errorf("admin password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", false, fmt.Errorf("hashing password: %w", err)
	}

	if _, err := store.CreateUser(ctx, db, email, string(hash), model.RoleAdmin); err != nil {
		return "", false, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("admin account created", "email", email)
	return password, true, nil
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
