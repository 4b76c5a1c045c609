package ports

import (
	"context"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// Session is an authenticated connection to the database server.
type Session interface {
	// Authenticate forces a round trip so rejected credentials surface as
	// domain.ErrAuthentication before any write is attempted.
	Authenticate(ctx context.Context) error
	// Database switches to the named database and returns its repositories.
	Database(name string) Repositories
}

// Repositories groups the per-collection stores of one database.
type Repositories struct {
	Config  ConfigRepository
	Users   UserRepository
	Indexes IndexRepository
}

// ConfigRepository persists configEcommerce documents.
type ConfigRepository interface {
	// InsertMany writes all entries as a single batch.
	InsertMany(ctx context.Context, entries []domain.ConfigEntry) (int, error)
	// Upsert inserts the entry unless one with the same key exists.
	// It reports whether a document was created.
	Upsert(ctx context.Context, entry domain.ConfigEntry) (bool, error)
	FindAll(ctx context.Context) ([]domain.ConfigEntry, error)
}

// UserRepository persists users documents.
type UserRepository interface {
	// Insert fails with domain.ErrDuplicateKey on a username or email collision.
	Insert(ctx context.Context, user *domain.User) error
	// Upsert inserts the user unless one with the same username exists.
	Upsert(ctx context.Context, user *domain.User) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// IndexRepository manages secondary indexes.
type IndexRepository interface {
	// Create builds the index and returns the name the server assigned.
	Create(ctx context.Context, spec domain.IndexSpec) (string, error)
	// Names lists the index names present on a collection.
	Names(ctx context.Context, collection string) ([]string, error)
}
