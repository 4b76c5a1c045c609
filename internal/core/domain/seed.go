package domain

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how the seeder behaves against a database that already holds
// seed data.
type Mode string

const (
	// ModeUpsert makes every write idempotent; re-runs insert nothing.
	ModeUpsert Mode = "upsert"
	// ModeStrict performs plain inserts; a re-run duplicates config entries
	// and then fails on the admin user's unique indexes.
	ModeStrict Mode = "strict"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeUpsert, "":
		return ModeUpsert, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("%w: %q (want upsert or strict)", ErrInvalidMode, s)
	}
}

// Step names one stage of a seed run.
type Step string

const (
	StepAuthenticate   Step = "authenticate"
	StepSelectDatabase Step = "select_database"
	StepInsertConfig   Step = "insert_config"
	StepCreateIndexes  Step = "create_indexes"
	StepInsertAdmin    Step = "insert_admin"
	StepVerify         Step = "verify"
)

// Steps is the fixed execution order.
var Steps = []Step{
	StepAuthenticate,
	StepSelectDatabase,
	StepInsertConfig,
	StepCreateIndexes,
	StepInsertAdmin,
	StepVerify,
}

// SeedReport summarises a finished run.
type SeedReport struct {
	Database         string     `json:"database"`
	Mode             Mode       `json:"mode"`
	ConfigInserted   int        `json:"config_inserted"`
	ConfigExisting   int        `json:"config_existing"`
	IndexesCreated   []string   `json:"indexes_created"`
	AdminCreated     bool       `json:"admin_created"`
	Verified         bool       `json:"verified"`
	MissingIndexes   []string   `json:"missing_indexes,omitempty"`
	PreviouslySeeded *time.Time `json:"previously_seeded,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       time.Time  `json:"finished_at"`
}

// Duration is the wall time of the run.
func (r *SeedReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Progress is a point-in-time view of a run, exposed by the status server.
type Progress struct {
	Database  string    `json:"database"`
	Current   Step      `json:"current,omitempty"`
	Completed []Step    `json:"completed"`
	Done      bool      `json:"done"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

// Collections written by the seeder.
const (
	CollectionConfig   = "configEcommerce"
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionReviews  = "reviews"
	CollectionOrders   = "orders"
	CollectionCarts    = "carts"
)
