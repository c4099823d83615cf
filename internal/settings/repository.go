package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("setting not found")

// Repository is a string key/value store.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT setting_value FROM settings WHERE setting_key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("repository: failed to select setting %q: %w", key, err)
	}

	return value, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("repository: failed to upsert setting %q: %w", key, err)
	}

	return nil
}
