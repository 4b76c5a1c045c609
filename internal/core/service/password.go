package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// DefaultAdminPasswordHash is the bcrypt (cost 10) hash the platform has
// always shipped for the bootstrap admin account.
const DefaultAdminPasswordHash = "$2a$10$XQFXjY2HY.4uAv3pg1bQh.Q.DuM1vZ7JAXP6pqD5yYmzhw/6VJYji"

// AdminOptions describes the bootstrap admin account.
type AdminOptions struct {
	Username string
	Email    string
	// Password is plaintext; it is hashed with bcrypt at BcryptCost.
	Password string
	// PasswordHash is a precomputed bcrypt hash. Mutually exclusive with Password.
	PasswordHash string
	BcryptCost   int
}

// ResolvePasswordHash returns the bcrypt hash to store for the admin.
func ResolvePasswordHash(opts AdminOptions) (string, error) {
	if opts.Password != "" && opts.PasswordHash != "" {
		return "", fmt.Errorf("%w: set either a password or a password hash, not both", domain.ErrInvalidPassword)
	}

	if opts.Password != "" {
		cost := opts.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return "", fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]", domain.ErrInvalidPassword, cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), cost)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrInvalidPassword, err)
		}
		return string(hash), nil
	}

	hash := strings.TrimSpace(opts.PasswordHash)
	if hash == "" {
		hash = DefaultAdminPasswordHash
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return "", fmt.Errorf("%w: not a bcrypt hash: %w", domain.ErrInvalidPassword, err)
	}
	return hash, nil
}

// NewAdminUser builds the admin user fixture. CreatedAt is left zero and
// stamped by the seeder at write time.
func NewAdminUser(opts AdminOptions) (domain.User, error) {
	hash, err := ResolvePasswordHash(opts)
	if err != nil {
		return domain.User{}, err
	}

	username := opts.Username
	if username == "" {
		username = "admin"
	}
	email := opts.Email
	if email == "" {
		email = "admin@example.com"
	}

	return domain.User{
		Username: username,
		Password: hash,
		Email:    email,
		Roles:    []string{domain.RoleAdmin},
		Active:   true,
	}, nil
}
