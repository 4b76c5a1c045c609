package service

import (
	"fmt"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// Fixtures is the complete set of seed data written by one run.
type Fixtures struct {
	ConfigEntries []domain.ConfigEntry
	Indexes       []domain.IndexSpec
	Admin         domain.User
}

// DefaultFixtures returns the platform's initial data with the given admin.
func DefaultFixtures(admin domain.User) Fixtures {
	return Fixtures{
		ConfigEntries: DefaultConfigEntries(),
		Indexes:       DefaultIndexes(),
		Admin:         admin,
	}
}

// DefaultConfigEntries are the runtime settings every deployment starts with.
func DefaultConfigEntries() []domain.ConfigEntry {
	return []domain.ConfigEntry{
		{
			Key:         "PAYMENT_GATEWAY_URL",
			Value:       "https://api.stripe.com/v1",
			Description: "Stripe API endpoint for payment processing",
			Active:      true,
		},
		{
			Key:         "ORDER_CLEANUP_DAYS",
			Value:       "30",
			Description: "Number of days after which abandoned orders are cleaned up",
			Active:      true,
		},
		{
			Key:         "PRODUCT_CACHE_TTL",
			Value:       "3600",
			Description: "Product cache time-to-live in seconds",
			Active:      true,
		},
	}
}

func asc(field string) domain.IndexKey  { return domain.IndexKey{Field: field, Order: domain.Ascending} }
func desc(field string) domain.IndexKey { return domain.IndexKey{Field: field, Order: domain.Descending} }
func text(field string) domain.IndexKey { return domain.IndexKey{Field: field, Order: domain.Text} }

func index(collection string, keys ...domain.IndexKey) domain.IndexSpec {
	return domain.IndexSpec{Collection: collection, Keys: keys}
}

func uniqueIndex(collection string, keys ...domain.IndexKey) domain.IndexSpec {
	return domain.IndexSpec{Collection: collection, Keys: keys, Unique: true}
}

// DefaultIndexes lists the secondary indexes in creation order.
func DefaultIndexes() []domain.IndexSpec {
	return []domain.IndexSpec{
		index(domain.CollectionProducts, text("name"), text("description")),
		index(domain.CollectionProducts, asc("category")),
		index(domain.CollectionProducts, asc("active")),
		index(domain.CollectionProducts, asc("category"), asc("active")),
		index(domain.CollectionProducts, asc("stockQuantity")),

		index(domain.CollectionReviews, asc("productId")),
		index(domain.CollectionReviews, asc("userId")),
		index(domain.CollectionReviews, asc("productId"), asc("userId")),
		index(domain.CollectionReviews, asc("rating")),

		index(domain.CollectionOrders, asc("userId"), desc("createdAt")),
		index(domain.CollectionOrders, asc("status")),

		uniqueIndex(domain.CollectionUsers, asc("username")),
		uniqueIndex(domain.CollectionUsers, asc("email")),

		uniqueIndex(domain.CollectionCarts, asc("userId")),
		index(domain.CollectionCarts, asc("updatedAt")),
	}
}

// Collections returns the indexed collections in first-seen order.
func (f Fixtures) Collections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, spec := range f.Indexes {
		if !seen[spec.Collection] {
			seen[spec.Collection] = true
			out = append(out, spec.Collection)
		}
	}
	return out
}

// Validate checks every fixture before anything is written.
func (f Fixtures) Validate() error {
	v := newFixtureValidator()

	keys := make(map[string]bool, len(f.ConfigEntries))
	for i, entry := range f.ConfigEntries {
		if err := v.Validate(fmt.Sprintf("config entry %d", i), entry); err != nil {
			return err
		}
		if keys[entry.Key] {
			return fmt.Errorf("%w: config key %s declared twice", domain.ErrInvalidFixture, entry.Key)
		}
		keys[entry.Key] = true
	}

	names := make(map[string]bool, len(f.Indexes))
	for _, spec := range f.Indexes {
		if err := v.Validate("index on "+spec.Collection, spec); err != nil {
			return err
		}
		if names[spec.String()] {
			return fmt.Errorf("%w: index %s declared twice", domain.ErrInvalidFixture, spec)
		}
		names[spec.String()] = true
	}

	return v.Validate("admin user", f.Admin)
}
