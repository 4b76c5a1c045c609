package ports

import (
	"context"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// SeedService runs the database initialization sequence.
type SeedService interface {
	Run(ctx context.Context) (*domain.SeedReport, error)
	Verify(ctx context.Context) ([]string, error)
}

// ProgressReporter exposes the state of an in-flight run.
type ProgressReporter interface {
	Progress() domain.Progress
}
