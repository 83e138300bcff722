package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
)

const orderColumns = `o.id, o.user_id, o.customer_name, o.customer_address, o.total_price,
        o.status, o.id_kurir, o.kurir_assigned_at, o.bukti, o.created_at`

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Rows returns the flat order x item join, newest orders first.
func (r *OrderRepo) Rows(ctx context.Context, f domain.OrderFilter) ([]domain.OrderItemRow, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if len(f.Statuses) > 0 {
		where = append(where, "o.status = ANY("+arg(statusStrings(f.Statuses))+")")
	}
	if len(f.Exclude) > 0 {
		where = append(where, "NOT (o.status = ANY("+arg(statusStrings(f.Exclude))+"))")
	}
	if f.CourierID != nil {
		where = append(where, "o.id_kurir = "+arg(*f.CourierID))
	}
	if f.UserID != nil {
		where = append(where, "o.user_id = "+arg(*f.UserID))
	}

	q := `SELECT o.id, o.user_id, o.customer_name, o.customer_address, o.total_price,
        o.status, o.id_kurir, o.created_at, o.bukti,
        i.product_id, i.product_name, i.quantity, i.price
    FROM orders o
    JOIN order_items i ON i.order_id = o.id`
	if len(where) > 0 {
		q += "\n    WHERE " + strings.Join(where, " AND ")
	}
	q += "\n    ORDER BY o.created_at DESC, o.id DESC, i.id ASC"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list order rows: %w", err)
	}
	defer rows.Close()

	out := make([]domain.OrderItemRow, 0)
	for rows.Next() {
		var (
			row    domain.OrderItemRow
			status string
		)
		if err := rows.Scan(
			&row.OrderID, &row.UserID, &row.CustomerName, &row.CustomerAddress, &row.TotalPrice,
			&status, &row.CourierID, &row.CreatedAt, &row.CompletionProof,
			&row.Item.ProductID, &row.Item.ProductName, &row.Item.Quantity, &row.Item.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		row.Status = domain.OrderStatus(status)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order rows: %w", err)
	}
	return out, nil
}

// Count returns the number of orders.
func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Sales returns the total price of completed orders.
func (r *OrderRepo) Sales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = $1`,
		string(domain.OrderCompleted),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

// Create stores a new Pending order with its items and returns its id.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) (id int64, err error) {
	if len(o.Items) == 0 {
		return 0, apperr.ErrEmptyOrder
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        INSERT INTO orders (user_id, customer_name, customer_address, total_price, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, o.UserID, o.CustomerName, o.CustomerAddress, o.TotalPrice, string(domain.OrderPending),
	).Scan(&id, &o.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, it := range o.Items {
		batch.Queue(`
            INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
            VALUES ($1, $2, $3, $4, $5)
        `, id, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	o.ID = id
	o.Status = domain.OrderPending
	return id, nil
}

// Audit counts rows that violate the lifecycle invariants.
func (r *OrderRepo) Audit(ctx context.Context) (domain.AuditReport, error) {
	var rep domain.AuditReport
	err := r.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM (
                SELECT id_kurir FROM orders
                WHERE status = 'Delivered' AND id_kurir IS NOT NULL
                GROUP BY id_kurir HAVING COUNT(*) > 1
            ) t),
            (SELECT COUNT(*) FROM orders WHERE (bukti IS NOT NULL) <> (status = 'Completed'))
    `).Scan(&rep.CouriersOverloaded, &rep.ProofMismatches)
	if err != nil {
		return domain.AuditReport{}, fmt.Errorf("audit orders: %w", err)
	}
	return rep, nil
}

func statusStrings(in []domain.OrderStatus) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(
		&o.ID, &o.UserID, &o.CustomerName, &o.CustomerAddress, &o.TotalPrice,
		&status, &o.CourierID, &o.CourierAssignedAt, &o.CompletionProof, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
