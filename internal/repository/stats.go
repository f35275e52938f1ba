package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

// StatsRepository stores cumulative player statistics.
type StatsRepository struct {
	db DBTX
}

// Replace overwrites the stat line of a player with the given totals.
func (r *StatsRepository) Replace(ctx context.Context, playerID int64, line domain.StatLine) error {
	const query = `
        INSERT INTO player_stats (player_id, games, goals, assists, shots, tackles, yellow_cards, red_cards, minutes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (player_id) DO UPDATE SET
            games = EXCLUDED.games,
            goals = EXCLUDED.goals,
            assists = EXCLUDED.assists,
            shots = EXCLUDED.shots,
            tackles = EXCLUDED.tackles,
            yellow_cards = EXCLUDED.yellow_cards,
            red_cards = EXCLUDED.red_cards,
            minutes = EXCLUDED.minutes,
            updated_at = now()
    `
	_, err := r.db.Exec(ctx, query, playerID,
		line.Games, line.Goals, line.Assists, line.Shots,
		line.Tackles, line.YellowCards, line.RedCards, line.Minutes)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("replace stats for player %d: %w", playerID, err)
	}
	return nil
}

// Get returns the stored stats of a player.
func (r *StatsRepository) Get(ctx context.Context, playerID int64) (domain.PlayerStats, error) {
	const query = `
        SELECT player_id, games, goals, assists, shots, tackles, yellow_cards, red_cards, minutes, updated_at
        FROM player_stats
        WHERE player_id = $1
    `
	var s domain.PlayerStats
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&s.PlayerID, &s.Games, &s.Goals, &s.Assists, &s.Shots,
		&s.Tackles, &s.YellowCards, &s.RedCards, &s.Minutes, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlayerStats{}, ErrNotFound
		}
		return domain.PlayerStats{}, err
	}
	return s, nil
}
