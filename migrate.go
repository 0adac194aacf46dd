package sqlstep

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is the database surface the migration runtime needs. Both *sql.DB
// and *sql.Tx satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Migrator executes migration statements against a database, bound to the
// snapshot being migrated to. Generated dispatchers construct one Migrator
// per step and hand it to the caller-supplied callback.
type Migrator struct {
	db       Execer
	snapshot Snapshot
}

// NewMigrator returns a Migrator bound to the given database and target
// snapshot.
func NewMigrator(db Execer, snapshot Snapshot) *Migrator {
	return &Migrator{db: db, snapshot: snapshot}
}

// Snapshot returns the target snapshot of the running step.
func (m *Migrator) Snapshot() Snapshot { return m.snapshot }

// Exec runs a single statement.
func (m *Migrator) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlstep: exec %q: %w", query, err)
	}
	return nil
}

// CreateAll creates every entity of the target snapshot, in declaration
// order.
func (m *Migrator) CreateAll(ctx context.Context) error {
	for _, e := range m.snapshot.Entities() {
		if _, err := m.db.ExecContext(ctx, e.CreateSQL()); err != nil {
			return fmt.Errorf("sqlstep: create %s: %w", e.EntityName(), err)
		}
	}
	return nil
}

// StepFunc advances the schema by exactly one version. It returns the version
// reached, or an UnknownVersionError when current matches no known source
// version.
type StepFunc func(ctx context.Context, current int64, db Execer) (int64, error)

// Steps is the calling shape produced by generated StepByStep factories:
// a single-step dispatcher together with the version range it covers.
type Steps struct {
	// From is the oldest version the dispatcher accepts.
	From int64
	// To is the newest version the dispatcher can reach.
	To int64
	// Step is the single-step dispatcher.
	Step StepFunc
}

// RunMigrationSteps applies steps.Step repeatedly until the current version
// reaches steps.To, and returns the version reached. A step that fails aborts
// the run; a step that does not advance the version returns ErrNoProgress.
func RunMigrationSteps(ctx context.Context, db Execer, current int64, steps Steps) (int64, error) {
	for current < steps.To {
		next, err := steps.Step(ctx, current, db)
		if err != nil {
			return current, err
		}
		if next <= current {
			return current, fmt.Errorf("%w: %d -> %d", ErrNoProgress, current, next)
		}
		current = next
	}
	return current, nil
}
