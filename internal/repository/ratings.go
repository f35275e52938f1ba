package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

// RatingsRepository provides helpers for player ratings.
type RatingsRepository struct {
	db DBTX
}

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	ObserverID int64
	PlayerID   int64
	Value      int
}

// Upsert inserts or updates a rating and indicates whether it was newly created.
// A missing player yields ErrNotFound and a missing observer ErrUnknownObserver.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	const query = `
        INSERT INTO ratings (observer_id, player_id, rating)
        VALUES ($1,$2,$3)
        ON CONFLICT (observer_id, player_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = clock_timestamp()
        RETURNING observer_id, player_id, rating, created_at, updated_at, (xmax = 0) AS inserted
    `

	var rating domain.Rating
	var inserted bool
	err := r.db.QueryRow(ctx, query, params.ObserverID, params.PlayerID, params.Value).Scan(
		&rating.ObserverID,
		&rating.PlayerID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&inserted,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			if pgErr.ConstraintName == "ratings_observer_fk" {
				return domain.Rating{}, false, ErrUnknownObserver
			}
			return domain.Rating{}, false, ErrNotFound
		}
		return domain.Rating{}, false, fmt.Errorf("upsert rating: %w", err)
	}

	return rating, inserted, nil
}

// Totals returns the rating sum and count for a player. A player without
// ratings, or an unknown player, yields zero totals.
func (r *RatingsRepository) Totals(ctx context.Context, playerID int64) (domain.RatingTotals, error) {
	const query = `
        SELECT COALESCE(SUM(rating), 0)::int8 AS total,
               COUNT(*)::int8 AS count
        FROM ratings
        WHERE player_id = $1
    `

	var totals domain.RatingTotals
	if err := r.db.QueryRow(ctx, query, playerID).Scan(&totals.Sum, &totals.Count); err != nil {
		return domain.RatingTotals{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return totals, nil
}

// SubmitAndTotals upserts a rating and reads the player's updated totals in
// one transaction, so the returned totals include the write.
func (r *RatingsRepository) SubmitAndTotals(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, domain.RatingTotals, error) {
	var (
		rating   domain.Rating
		inserted bool
		totals   domain.RatingTotals
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		inner := &RatingsRepository{db: tx}
		var err error
		rating, inserted, err = inner.Upsert(ctx, params)
		if err != nil {
			return err
		}
		totals, err = inner.Totals(ctx, params.PlayerID)
		return err
	})
	if err != nil {
		return domain.Rating{}, false, domain.RatingTotals{}, err
	}
	return rating, inserted, totals, nil
}

// ListByObserver returns every rating the observer has made, most recently
// submitted first, joined with player and team display data.
func (r *RatingsRepository) ListByObserver(ctx context.Context, observerID int64) ([]domain.ObserverRating, error) {
	const query = `
        SELECT r.player_id, p.name, p.position, t.name, r.rating, r.updated_at
        FROM ratings r
        JOIN players p ON p.id = r.player_id
        LEFT JOIN teams t ON t.id = p.team_id
        WHERE r.observer_id = $1
        ORDER BY r.updated_at DESC, r.player_id DESC
    `
	rows, err := r.db.Query(ctx, query, observerID)
	if err != nil {
		return nil, fmt.Errorf("list observer ratings: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ObserverRating, 0)
	for rows.Next() {
		var item domain.ObserverRating
		if err := rows.Scan(&item.PlayerID, &item.PlayerName, &item.Position, &item.TeamName, &item.Value, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
