package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/tasty-ordering/internal/db"
)

type Repository interface {
	ListOrders(ctx context.Context) ([]Order, error)
	CreateOrder(ctx context.Context, order *Order) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// ListOrders returns every order newest first, each with its line items in
// insertion order. Both reads share one repeatable-read snapshot.
func (r *postgresRepository) ListOrders(ctx context.Context) ([]Order, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin read transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only

	ordersQuery := `
		SELECT id, customer_name, customer_phone, COALESCE(customer_note, '') AS customer_note,
		       total_amount, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`

	orders := make([]Order, 0)
	if err := tx.SelectContext(ctx, &orders, ordersQuery); err != nil {
		return nil, fmt.Errorf("repository: failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	ordersByID := make(map[int64]*Order, len(orders))
	orderIDs := make([]int64, 0, len(orders))
	for i := range orders {
		orders[i].Items = make([]LineItem, 0)
		ordersByID[orders[i].ID] = &orders[i]
		orderIDs = append(orderIDs, orders[i].ID)
	}

	itemsQuery := `
		SELECT id, order_id, menu_item_name, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`

	rows, err := tx.QueryxContext(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item LineItem
		if err := rows.StructScan(&item); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}

		if o, ok := ordersByID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating order items: %w", err)
	}

	return orders, nil
}

// CreateOrder inserts the order row to obtain its id and then one row per line
// item, all in a single transaction.
func (r *postgresRepository) CreateOrder(ctx context.Context, order *Order) (orderID int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Msg("Panic recovered during CreateOrder, rolling back")
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Msg("Transaction for CreateOrder failed, rolling back")
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
		} else if commitErr := tx.Commit(); commitErr != nil {
			log.Error().Err(commitErr).Int64("order_id", orderID).Msg("Failed to commit transaction")
			err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			orderID = 0
		}
	}()

	orderQuery := `
		INSERT INTO orders (customer_name, customer_phone, customer_note, total_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = tx.QueryRowxContext(ctx, orderQuery,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerNote,
		order.TotalAmount,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, menu_item_name, price, quantity)
		VALUES (:order_id, :menu_item_name, :price, :quantity)
		RETURNING id
	`
	stmt, err := tx.PrepareNamedContext(ctx, itemQuery)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to prepare order item insert: %w", err)
	}
	defer stmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if err = stmt.GetContext(ctx, &item.ID, item); err != nil {
			if db.IsIntegrityViolation(err) {
				log.Warn().Err(err).Int64("order_id", order.ID).Str("constraint", db.ConstraintName(err)).Msg("repository: order item rejected by constraint")
			}
			return 0, fmt.Errorf("repository: failed to insert order item for order %d: %w", order.ID, err)
		}
	}

	return order.ID, nil
}

// UpdateOrderStatus overwrites the status and reports whether a row matched.
func (r *postgresRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return false, fmt.Errorf("repository: failed to update order status %d: %w", orderID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("repository: failed to read affected rows for order %d: %w", orderID, err)
	}

	return affected > 0, nil
}
