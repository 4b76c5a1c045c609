package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/engineeringdigest/ecommerce-seeder/internal/api/metrics"
	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
	"github.com/engineeringdigest/ecommerce-seeder/internal/core/ports"
)

const DefaultDatabase = "ecommerce"

// Options controls a seed run.
type Options struct {
	Database string
	Mode     domain.Mode
	// Verify lists indexes after the writes and fails the run if any
	// declared index is missing.
	Verify bool
}

// Seeder brings a fresh database to its initial state. A Seeder performs a
// single run; the steps execute sequentially and the first error aborts the
// remainder.
type Seeder struct {
	session  ports.Session
	fixtures Fixtures
	opts     Options
	lock     ports.SeedLock
	log      zerolog.Logger
	now      func() time.Time

	repos ports.Repositories

	mu       sync.RWMutex
	progress domain.Progress
}

// NewSeeder returns a Seeder. lock may be nil, in which case runs are not
// serialised across processes.
func NewSeeder(session ports.Session, fixtures Fixtures, opts Options, lock ports.SeedLock, log zerolog.Logger) *Seeder {
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeUpsert
	}
	return &Seeder{
		session:  session,
		fixtures: fixtures,
		opts:     opts,
		lock:     lock,
		log:      log.With().Str("database", opts.Database).Str("mode", string(opts.Mode)).Logger(),
		now:      func() time.Time { return time.Now().UTC() },
		progress: domain.Progress{Database: opts.Database, Completed: []domain.Step{}},
	}
}

type seedStep struct {
	step domain.Step
	run  func(ctx context.Context, report *domain.SeedReport) error
}

// Run executes the seed sequence. On failure the partially filled report is
// returned together with the error.
func (s *Seeder) Run(ctx context.Context) (report *domain.SeedReport, err error) {
	report = &domain.SeedReport{
		Database:       s.opts.Database,
		Mode:           s.opts.Mode,
		IndexesCreated: []string{},
		StartedAt:      s.now(),
	}
	s.begin(report.StartedAt)
	defer func() { s.finish(err) }()

	if err := s.fixtures.Validate(); err != nil {
		return report, err
	}

	if s.lock != nil {
		release, err := s.acquireLock(ctx, report)
		if err != nil {
			return report, err
		}
		defer release()
	}

	steps := []seedStep{
		{domain.StepAuthenticate, s.authenticate},
		{domain.StepSelectDatabase, s.selectDatabase},
		{domain.StepInsertConfig, s.insertConfig},
		{domain.StepCreateIndexes, s.createIndexes},
		{domain.StepInsertAdmin, s.insertAdmin},
	}
	if s.opts.Verify {
		steps = append(steps, seedStep{domain.StepVerify, s.verify})
	}

	for _, st := range steps {
		if err := s.runStep(ctx, st, report); err != nil {
			return report, err
		}
	}

	report.FinishedAt = s.now()
	metrics.LastSuccessTimestamp.Set(float64(report.FinishedAt.Unix()))

	if s.lock != nil {
		if err := s.lock.MarkSeeded(ctx, s.opts.Database, report.FinishedAt); err != nil {
			s.log.Warn().Err(err).Msg("failed to record seed completion")
		}
	}

	s.log.Info().
		Int("config_inserted", report.ConfigInserted).
		Int("config_existing", report.ConfigExisting).
		Int("indexes", len(report.IndexesCreated)).
		Bool("admin_created", report.AdminCreated).
		Dur("duration", report.Duration()).
		Msg("seed run completed")

	return report, nil
}

// Verify returns the declared indexes that are absent from the database, as
// "collection.indexName".
func (s *Seeder) Verify(ctx context.Context) ([]string, error) {
	if s.repos.Indexes == nil {
		s.repos = s.session.Database(s.opts.Database)
	}

	var missing []string
	for _, coll := range s.fixtures.Collections() {
		names, err := s.repos.Indexes.Names(ctx, coll)
		if err != nil {
			return nil, fmt.Errorf("list indexes on %s: %w", coll, err)
		}
		present := make(map[string]bool, len(names))
		for _, n := range names {
			present[n] = true
		}
		for _, spec := range s.fixtures.Indexes {
			if spec.Collection == coll && !present[spec.Name()] {
				missing = append(missing, coll+"."+spec.Name())
			}
		}
	}
	return missing, nil
}

// Progress returns a snapshot of the run state.
func (s *Seeder) Progress() domain.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.progress
	p.Completed = append([]domain.Step(nil), s.progress.Completed...)
	return p
}

func (s *Seeder) acquireLock(ctx context.Context, report *domain.SeedReport) (func(), error) {
	ok, err := s.lock.Acquire(ctx, s.opts.Database)
	if err != nil {
		return nil, fmt.Errorf("acquire seed lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrSeedInProgress
	}

	if at, found, err := s.lock.LastSeeded(ctx, s.opts.Database); err != nil {
		s.log.Warn().Err(err).Msg("could not read last seed time")
	} else if found {
		report.PreviouslySeeded = &at
		s.log.Info().Time("previously_seeded", at).Msg("database was seeded before")
	}

	return func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), s.opts.Database); err != nil {
			s.log.Warn().Err(err).Msg("failed to release seed lock")
		}
	}, nil
}

// extendLock renews the run lock so long index builds cannot outlive its
// TTL. Losing the lock to another seeder aborts the run; a Redis error only
// warns, since the TTL still covers the current step.
func (s *Seeder) extendLock(ctx context.Context) error {
	if s.lock == nil {
		return nil
	}
	held, err := s.lock.Extend(ctx, s.opts.Database)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to extend seed lock")
		return nil
	}
	if !held {
		return fmt.Errorf("%w: seed lock lost", domain.ErrSeedInProgress)
	}
	return nil
}

func (s *Seeder) runStep(ctx context.Context, st seedStep, report *domain.SeedReport) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("step %s: %w", st.step, err)
	}

	if err := s.extendLock(ctx); err != nil {
		return fmt.Errorf("step %s: %w", st.step, err)
	}

	s.setCurrent(st.step)
	start := time.Now()
	err := st.run(ctx, report)
	elapsed := time.Since(start)
	metrics.StepDuration.WithLabelValues(string(st.step)).Observe(elapsed.Seconds())

	if err != nil {
		metrics.StepErrorsTotal.WithLabelValues(string(st.step), errorReason(err)).Inc()
		s.log.Error().Err(err).Str("step", string(st.step)).Dur("duration", elapsed).Msg("seed step failed")
		return fmt.Errorf("step %s: %w", st.step, err)
	}

	s.complete(st.step)
	s.log.Info().Str("step", string(st.step)).Dur("duration", elapsed).Msg("seed step completed")
	return nil
}

func (s *Seeder) authenticate(ctx context.Context, _ *domain.SeedReport) error {
	return s.session.Authenticate(ctx)
}

func (s *Seeder) selectDatabase(_ context.Context, _ *domain.SeedReport) error {
	s.repos = s.session.Database(s.opts.Database)
	return nil
}

func (s *Seeder) insertConfig(ctx context.Context, report *domain.SeedReport) error {
	entries := s.fixtures.ConfigEntries

	if s.opts.Mode == domain.ModeStrict {
		n, err := s.repos.Config.InsertMany(ctx, entries)
		report.ConfigInserted = n
		recordDocuments(domain.CollectionConfig, n, 0)
		return err
	}

	for _, entry := range entries {
		created, err := s.repos.Config.Upsert(ctx, entry)
		if err != nil {
			recordDocuments(domain.CollectionConfig, report.ConfigInserted, report.ConfigExisting)
			return fmt.Errorf("config %s: %w", entry.Key, err)
		}
		if created {
			report.ConfigInserted++
		} else {
			report.ConfigExisting++
			s.log.Debug().Str("key", entry.Key).Msg("config entry already present")
		}
	}
	recordDocuments(domain.CollectionConfig, report.ConfigInserted, report.ConfigExisting)
	return nil
}

func (s *Seeder) createIndexes(ctx context.Context, report *domain.SeedReport) error {
	for i, spec := range s.fixtures.Indexes {
		if i > 0 {
			if err := s.extendLock(ctx); err != nil {
				return err
			}
		}
		name, err := s.repos.Indexes.Create(ctx, spec)
		if err != nil {
			return fmt.Errorf("index %s: %w", spec, err)
		}
		report.IndexesCreated = append(report.IndexesCreated, spec.Collection+"."+name)
		metrics.IndexesCreatedTotal.WithLabelValues(spec.Collection).Inc()
		s.log.Debug().Str("collection", spec.Collection).Str("index", name).Bool("unique", spec.Unique).Msg("index ensured")
	}
	return nil
}

func (s *Seeder) insertAdmin(ctx context.Context, report *domain.SeedReport) error {
	admin := s.fixtures.Admin
	admin.Roles = append([]string(nil), admin.Roles...)
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = s.now()
	}

	if s.opts.Mode == domain.ModeStrict {
		if err := s.repos.Users.Insert(ctx, &admin); err != nil {
			return fmt.Errorf("user %s: %w", admin.Username, err)
		}
		report.AdminCreated = true
		recordDocuments(domain.CollectionUsers, 1, 0)
		return nil
	}

	created, err := s.repos.Users.Upsert(ctx, &admin)
	if err != nil {
		return fmt.Errorf("user %s: %w", admin.Username, err)
	}
	report.AdminCreated = created
	if created {
		recordDocuments(domain.CollectionUsers, 1, 0)
	} else {
		recordDocuments(domain.CollectionUsers, 0, 1)
		s.log.Info().Str("username", admin.Username).Msg("admin user already present, left untouched")
	}
	return nil
}

func (s *Seeder) verify(ctx context.Context, report *domain.SeedReport) error {
	missing, err := s.Verify(ctx)
	if err != nil {
		return err
	}
	report.MissingIndexes = missing
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing indexes %s", domain.ErrVerification, strings.Join(missing, ", "))
	}
	report.Verified = true
	return nil
}

func (s *Seeder) begin(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.StartedAt = at
}

func (s *Seeder) setCurrent(step domain.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Current = step
}

func (s *Seeder) complete(step domain.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Completed = append(s.progress.Completed, step)
}

func (s *Seeder) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Current = ""
	s.progress.Done = true
	if err != nil {
		s.progress.Error = err.Error()
	}
}

func recordDocuments(collection string, inserted, existing int) {
	if inserted > 0 {
		metrics.DocumentsWrittenTotal.WithLabelValues(collection, "inserted").Add(float64(inserted))
	}
	if existing > 0 {
		metrics.DocumentsWrittenTotal.WithLabelValues(collection, "existing").Add(float64(existing))
	}
}

// errorReason maps an error to the metrics "reason" label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return "auth"
	case errors.Is(err, domain.ErrWrite):
		return "write"
	case errors.Is(err, domain.ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, domain.ErrVerification):
		return "verification"
	default:
		return "other"
	}
}

var _ ports.SeedService = (*Seeder)(nil)
var _ ports.ProgressReporter = (*Seeder)(nil)
