package service

import (
	"errors"
	"testing"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

func TestDefaultIndexes_Declarations(t *testing.T) {
	want := map[string][]string{
		"products": {"name_text_description_text", "category_1", "active_1", "category_1_active_1", "stockQuantity_1"},
		"reviews":  {"productId_1", "userId_1", "productId_1_userId_1", "rating_1"},
		"orders":   {"userId_1_createdAt_-1", "status_1"},
		"users":    {"username_1", "email_1"},
		"carts":    {"userId_1", "updatedAt_1"},
	}

	got := make(map[string][]string)
	for _, spec := range DefaultIndexes() {
		got[spec.Collection] = append(got[spec.Collection], spec.Name())
	}

	for coll, names := range want {
		if len(got[coll]) != len(names) {
			t.Fatalf("%s: expected %v, got %v", coll, names, got[coll])
		}
		for i := range names {
			if got[coll][i] != names[i] {
				t.Errorf("%s[%d]: expected %s, got %s", coll, i, names[i], got[coll][i])
			}
		}
	}
}

func TestDefaultIndexes_OnlyDeclaredUniques(t *testing.T) {
	unique := map[string]bool{
		"users.username_1": true,
		"users.email_1":    true,
		"carts.userId_1":   true,
	}
	for _, spec := range DefaultIndexes() {
		key := spec.Collection + "." + spec.Name()
		if spec.Unique != unique[key] {
			t.Errorf("%s: unique=%v, want %v", key, spec.Unique, unique[key])
		}
	}
}

func TestFixtures_Collections(t *testing.T) {
	f := DefaultFixtures(domain.User{})
	got := f.Collections()
	want := []string{"products", "reviews", "orders", "users", "carts"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collection %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFixtures_Validate_Defaults(t *testing.T) {
	if err := DefaultFixtures(testAdmin(t)).Validate(); err != nil {
		t.Fatalf("default fixtures should be valid: %v", err)
	}
}

func TestFixtures_Validate_Rejects(t *testing.T) {
	cases := map[string]func(f *Fixtures){
		"lower case key": func(f *Fixtures) { f.ConfigEntries[0].Key = "payment_gateway_url" },
		"empty value":    func(f *Fixtures) { f.ConfigEntries[1].Value = "" },
		"duplicate key":  func(f *Fixtures) { f.ConfigEntries[2].Key = f.ConfigEntries[0].Key },
		"index no keys":  func(f *Fixtures) { f.Indexes[0].Keys = nil },
		"bad order":      func(f *Fixtures) { f.Indexes[1].Keys[0].Order = 7 },
		"duplicate index": func(f *Fixtures) {
			f.Indexes = append(f.Indexes, f.Indexes[0])
		},
		"admin no roles": func(f *Fixtures) { f.Admin.Roles = nil },
		"admin bad mail": func(f *Fixtures) { f.Admin.Email = "admin" },
		"admin no hash":  func(f *Fixtures) { f.Admin.Password = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := DefaultFixtures(testAdmin(t))
			mutate(&f)
			if err := f.Validate(); !errors.Is(err, domain.ErrInvalidFixture) {
				t.Fatalf("expected ErrInvalidFixture, got %v", err)
			}
		})
	}
}
