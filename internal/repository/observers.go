package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

// ObserversRepository stores scout accounts.
type ObserversRepository struct {
	db DBTX
}

// ObserverCreateParams carries an already hashed password.
type ObserverCreateParams struct {
	Name         string
	Email        string
	PasswordHash string
}

const observerColumns = `id, name, email, password_hash, created_at`

// Create inserts an observer. A duplicate email yields ErrConflict.
func (r *ObserversRepository) Create(ctx context.Context, params ObserverCreateParams) (domain.Observer, error) {
	query := fmt.Sprintf(`
        INSERT INTO observers (name, email, password_hash)
        VALUES ($1,$2,$3)
        RETURNING %s
    `, observerColumns)
	observer, err := scanObserver(r.db.QueryRow(ctx, query, params.Name, params.Email, params.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Observer{}, ErrConflict
		}
		return domain.Observer{}, fmt.Errorf("create observer: %w", err)
	}
	return observer, nil
}

// GetByEmail looks an observer up by login email.
func (r *ObserversRepository) GetByEmail(ctx context.Context, email string) (domain.Observer, error) {
	query := fmt.Sprintf(`SELECT %s FROM observers WHERE email = $1`, observerColumns)
	return r.getOne(ctx, query, email)
}

// GetByID looks an observer up by identifier.
func (r *ObserversRepository) GetByID(ctx context.Context, id int64) (domain.Observer, error) {
	query := fmt.Sprintf(`SELECT %s FROM observers WHERE id = $1`, observerColumns)
	return r.getOne(ctx, query, id)
}

func (r *ObserversRepository) getOne(ctx context.Context, query string, arg any) (domain.Observer, error) {
	observer, err := scanObserver(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Observer{}, ErrNotFound
		}
		return domain.Observer{}, err
	}
	return observer, nil
}

func scanObserver(row pgx.Row) (domain.Observer, error) {
	var o domain.Observer
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.CreatedAt)
	return o, err
}
