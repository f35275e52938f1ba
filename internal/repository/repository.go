package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/scouting-api/internal/store"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates a uniqueness constraint rejected the write.
	ErrConflict = errors.New("repository: conflict")
	// ErrUnknownObserver indicates a rating referenced an observer row that is gone.
	ErrUnknownObserver = errors.New("repository: unknown observer")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// can run standalone or inside a caller's transaction.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	db        DBTX
	Teams     *TeamsRepository
	Players   *PlayersRepository
	Observers *ObserversRepository
	Ratings   *RatingsRepository
	Stats     *StatsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return newRepository(pool)
}

func newRepository(db DBTX) *Repository {
	return &Repository{
		db:        db,
		Teams:     &TeamsRepository{db: db},
		Players:   &PlayersRepository{db: db},
		Observers: &ObserversRepository{db: db},
		Ratings:   &RatingsRepository{db: db},
		Stats:     &StatsRepository{db: db},
	}
}

// WithTx runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(newRepository(tx))
	})
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgUniqueViolation
}
