package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/tasty-ordering/internal/db"
)

var ErrNotFound = errors.New("menu item not found")

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item *Item) (int64, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context) ([]Item, error) {
	query := `
		SELECT id, name, description, price, category, image_url, is_available
		FROM menu_items
		ORDER BY id
	`

	items := make([]Item, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("repository: failed to select menu items: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Create(ctx context.Context, item *Item) (int64, error) {
	query := `
		INSERT INTO menu_items (name, description, price, category, image_url, is_available)
		VALUES (:name, :description, :price, :category, :image_url, :is_available)
		RETURNING id
	`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to prepare menu item insert: %w", err)
	}
	defer stmt.Close()

	var id int64
	if err := stmt.GetContext(ctx, &id, item); err != nil {
		if db.IsIntegrityViolation(err) {
			log.Warn().Err(err).Str("constraint", db.ConstraintName(err)).Msg("repository: menu item rejected by constraint")
		}
		return 0, fmt.Errorf("repository: failed to insert menu item: %w", err)
	}
	item.ID = id

	return id, nil
}

// Update overwrites every column of the row; it is not a partial patch.
func (r *postgresRepository) Update(ctx context.Context, item *Item) error {
	query := `
		UPDATE menu_items
		SET name = :name,
		    description = :description,
		    price = :price,
		    category = :category,
		    image_url = :image_url,
		    is_available = :is_available
		WHERE id = :id
	`

	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		if db.IsIntegrityViolation(err) {
			log.Warn().Err(err).Int64("menu_item_id", item.ID).Str("constraint", db.ConstraintName(err)).Msg("repository: menu item update rejected by constraint")
		}
		return fmt.Errorf("repository: failed to update menu item %d: %w", item.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows for menu item %d: %w", item.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("repository: failed to delete menu item %d: %w", id, err)
	}

	return nil
}

// ToggleAvailability flips is_available in place and reports whether a row
// matched.
func (r *postgresRepository) ToggleAvailability(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE menu_items SET is_available = NOT is_available WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("repository: failed to toggle menu item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("repository: failed to read affected rows for menu item %d: %w", id, err)
	}

	return affected > 0, nil
}
