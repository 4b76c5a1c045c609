package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

func TestResolvePasswordHash_DefaultLiteral(t *testing.T) {
	hash, err := ResolvePasswordHash(AdminOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != DefaultAdminPasswordHash {
		t.Fatalf("expected default hash, got %s", hash)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d (%v)", cost, err)
	}
}

func TestResolvePasswordHash_Plaintext(t *testing.T) {
	hash, err := ResolvePasswordHash(AdminOptions{Password: "s3cret", BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("expected password to be hashed")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("expected $2a$ bcrypt hash, got %s", hash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}
}

func TestResolvePasswordHash_ProvidedHash(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	hash, err := ResolvePasswordHash(AdminOptions{PasswordHash: " " + string(raw) + "\n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != string(raw) {
		t.Fatalf("expected provided hash to be kept verbatim, got %s", hash)
	}
}

func TestResolvePasswordHash_Rejects(t *testing.T) {
	cases := map[string]AdminOptions{
		"both set":   {Password: "x", PasswordHash: DefaultAdminPasswordHash},
		"not bcrypt": {PasswordHash: "5f4dcc3b5aa765d61d8327deb882cf99"},
		"cost low":   {Password: "x", BcryptCost: 2},
		"cost high":  {Password: "x", BcryptCost: 40},
	}
	for name, opts := range cases {
		if _, err := ResolvePasswordHash(opts); !errors.Is(err, domain.ErrInvalidPassword) {
			t.Errorf("%s: expected ErrInvalidPassword, got %v", name, err)
		}
	}
}

func TestNewAdminUser_Defaults(t *testing.T) {
	admin, err := NewAdminUser(AdminOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Username != "admin" || admin.Email != "admin@example.com" {
		t.Fatalf("unexpected identity: %+v", admin)
	}
	if !admin.HasRole(domain.RoleAdmin) || len(admin.Roles) != 1 {
		t.Fatalf("expected exactly the ADMIN role, got %v", admin.Roles)
	}
	if !admin.Active {
		t.Fatal("admin should be active")
	}
	if !admin.CreatedAt.IsZero() {
		t.Fatal("createdAt is stamped at write time")
	}
}

func TestNewAdminUser_Overrides(t *testing.T) {
	admin, err := NewAdminUser(AdminOptions{Username: "root", Email: "ops@shop.test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Username != "root" || admin.Email != "ops@shop.test" {
		t.Fatalf("overrides not applied: %+v", admin)
	}
}
