package order

import "time"

// Status labels used by the storefront. The set is open: any string is a
// valid status and no transitions are enforced.
const (
	StatusPending   = "待處理"
	StatusCooking   = "製作中"
	StatusCompleted = "已完成"
	StatusCancelled = "已取消"
)

// LineItem is one product line of an order. Name and Price are copied from
// the menu when the order is placed and are never re-read from it.
type LineItem struct {
	ID       int64  `db:"id"`
	OrderID  int64  `db:"order_id"`
	Name     string `db:"menu_item_name"`
	Price    int    `db:"price"`
	Quantity int    `db:"quantity"`
}

type Order struct {
	ID            int64      `db:"id"`
	CustomerName  string     `db:"customer_name"`
	CustomerPhone string     `db:"customer_phone"`
	CustomerNote  string     `db:"customer_note"`
	TotalAmount   int        `db:"total_amount"` // supplied by the client, never recomputed
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	Items         []LineItem `db:"-"`
}
