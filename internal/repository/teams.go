package repository

import (
	"context"
	"fmt"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

// TeamsRepository provides persistence helpers for teams.
type TeamsRepository struct {
	db DBTX
}

// FindOrCreate returns the team with the given name, inserting it if needed.
func (r *TeamsRepository) FindOrCreate(ctx context.Context, name string) (domain.Team, error) {
	const query = `
        INSERT INTO teams (name)
        VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name, created_at
    `
	var team domain.Team
	if err := r.db.QueryRow(ctx, query, name).Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
		return domain.Team{}, fmt.Errorf("find or create team %q: %w", name, err)
	}
	return team, nil
}

// List returns all teams ordered by name.
func (r *TeamsRepository) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]domain.Team, 0)
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}
