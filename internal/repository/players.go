package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

// PlayersRepository provides persistence helpers for player entities.
type PlayersRepository struct {
	db DBTX
}

const playerSelect = `
    SELECT p.id, p.name, p.position, p.team_id, t.name, p.created_at, p.updated_at
    FROM players p
    LEFT JOIN teams t ON t.id = p.team_id
`

// PlayerCreateParams bundles the fields required to create a player.
type PlayerCreateParams struct {
	Name     string
	Position string
	TeamID   *int64
}

// PlayerListFilters encapsulates search and pagination options.
type PlayerListFilters struct {
	Query    *string
	Position *string
	Team     *string
	Limit    int
	Cursor   *PlayerCursor
}

// PlayerCursor allows stable pagination by created_at/id.
type PlayerCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        int64     `json:"id"`
}

// PlayerListResult returns the paginated payload.
type PlayerListResult struct {
	Items      []domain.Player
	NextCursor *string
}

// Create inserts a new player row. A duplicate (name, team) pair yields ErrConflict.
func (r *PlayersRepository) Create(ctx context.Context, params PlayerCreateParams) (domain.Player, error) {
	const query = `
        WITH inserted AS (
            INSERT INTO players (name, position, team_id)
            VALUES ($1,$2,$3)
            RETURNING id, name, position, team_id, created_at, updated_at
        )
        SELECT i.id, i.name, i.position, i.team_id, t.name, i.created_at, i.updated_at
        FROM inserted i
        LEFT JOIN teams t ON t.id = i.team_id
    `
	player, err := scanPlayer(r.db.QueryRow(ctx, query, params.Name, params.Position, params.TeamID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Player{}, ErrConflict
		}
		return domain.Player{}, fmt.Errorf("create player: %w", err)
	}
	return player, nil
}

// FindOrCreate returns the id of the player identified by (name, team),
// creating it when absent. A non-empty position overwrites the stored one.
func (r *PlayersRepository) FindOrCreate(ctx context.Context, params PlayerCreateParams) (int64, error) {
	const query = `
        INSERT INTO players (name, position, team_id)
        VALUES ($1,$2,$3)
        ON CONFLICT (name, (COALESCE(team_id, 0)))
        DO UPDATE SET position = CASE WHEN EXCLUDED.position <> '' THEN EXCLUDED.position ELSE players.position END,
                      updated_at = now()
        RETURNING id
    `
	var id int64
	if err := r.db.QueryRow(ctx, query, params.Name, params.Position, params.TeamID).Scan(&id); err != nil {
		return 0, fmt.Errorf("find or create player %q: %w", params.Name, err)
	}
	return id, nil
}

// GetByID fetches a player by its identifier.
func (r *PlayersRepository) GetByID(ctx context.Context, id int64) (domain.Player, error) {
	player, err := scanPlayer(r.db.QueryRow(ctx, playerSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Player{}, ErrNotFound
		}
		return domain.Player{}, err
	}
	return player, nil
}

// Delete removes a player; ratings and stats cascade.
func (r *PlayersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns players that match the provided filters.
func (r *PlayersRepository) List(ctx context.Context, filters PlayerListFilters) (PlayerListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20
	} else if filters.Limit > 100 {
		filters.Limit = 100
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Query != nil && strings.TrimSpace(*filters.Query) != "" {
		where = append(where, fmt.Sprintf("p.name ILIKE %s", arg("%"+strings.TrimSpace(*filters.Query)+"%")))
	}
	if filters.Position != nil && strings.TrimSpace(*filters.Position) != "" {
		where = append(where, fmt.Sprintf("p.position ILIKE %s", arg(strings.TrimSpace(*filters.Position))))
	}
	if filters.Team != nil && strings.TrimSpace(*filters.Team) != "" {
		where = append(where, fmt.Sprintf("t.name ILIKE %s", arg(strings.TrimSpace(*filters.Team))))
	}
	if filters.Cursor != nil {
		cursorCreated := arg(filters.Cursor.CreatedAt)
		cursorID := arg(filters.Cursor.ID)
		where = append(where, fmt.Sprintf("(p.created_at, p.id) < (%s, %s)", cursorCreated, cursorID))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(playerSelect)
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY p.created_at DESC, p.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d", filters.Limit))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return PlayerListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return PlayerListResult{}, err
		}
		items = append(items, player)
	}
	if err := rows.Err(); err != nil {
		return PlayerListResult{}, err
	}

	var nextCursor *string
	if len(items) == filters.Limit {
		last := items[len(items)-1]
		token, err := encodeCursor(PlayerCursor{CreatedAt: last.CreatedAt, ID: last.ID})
		if err != nil {
			return PlayerListResult{}, err
		}
		nextCursor = &token
	}

	return PlayerListResult{Items: items, NextCursor: nextCursor}, nil
}

func scanPlayer(row pgx.Row) (domain.Player, error) {
	var player domain.Player
	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.TeamID,
		&player.TeamName,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

func encodeCursor(c PlayerCursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeCursor parses a cursor token into a PlayerCursor.
func DecodeCursor(token string) (*PlayerCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor PlayerCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	return &cursor, nil
}
