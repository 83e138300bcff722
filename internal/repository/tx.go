package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/ports/ordertx"
)

// TxRunner runs order write transactions.
type TxRunner struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner creates a new TxRunner. A positive lockTimeout bounds every row lock wait.
func NewTxRunner(db *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{db: db, lockTimeout: lockTimeout}
}

// WithTx opens a transaction and executes fn within it.
func (r *TxRunner) WithTx(ctx context.Context, fn func(tx ordertx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return classify("begin tx", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if r.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`,
			fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return classify("commit tx", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ ordertx.Repository = (*TxRepo)(nil)

// LockOrder - select order for update, together with its items.
func (r *TxRepo) LockOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE o.id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, classify(fmt.Sprintf("lock order %d", id), err)
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, classify(fmt.Sprintf("load order %d items", id), err)
	}
	o.Items = items
	return o, nil
}

func (r *TxRepo) items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT product_id, product_name, quantity, price
        FROM order_items
        WHERE order_id = $1
        ORDER BY id
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// LockRoster - lock all courier rows, then compute their load in a separate statement
// so the busy flags reflect every commit that happened before the locks were granted.
func (r *TxRepo) LockRoster(ctx context.Context) ([]domain.CourierLoad, error) {
	rows, err := r.tx.Query(ctx, `SELECT id FROM kurir ORDER BY id FOR UPDATE`)
	if err != nil {
		return nil, classify("lock couriers", err)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify("lock couriers", err)
	}

	list, err := queryRoster(ctx, r.tx, rosterSQL+` ORDER BY k.id`)
	if err != nil {
		return nil, classify("load couriers", err)
	}
	return list, nil
}

// SetStatus - conditional status update.
func (r *TxRepo) SetStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error {
	return r.update(ctx, fmt.Sprintf("set order %d status %s", orderID, to), `
        UPDATE orders SET status = $3
        WHERE id = $1 AND status = $2
    `, orderID, string(from), string(to))
}

// SetDelivered - assign courier and move the order to Delivered.
func (r *TxRepo) SetDelivered(ctx context.Context, orderID int64, from domain.OrderStatus, courierID int64) error {
	return r.update(ctx, fmt.Sprintf("deliver order %d by courier %d", orderID, courierID), `
        UPDATE orders
        SET status = 'Delivered', id_kurir = $3, kurir_assigned_at = now()
        WHERE id = $1 AND status = $2
    `, orderID, string(from), courierID)
}

// SetCompleted - complete a Delivered order with its proof.
func (r *TxRepo) SetCompleted(ctx context.Context, orderID int64, proof string) error {
	return r.update(ctx, fmt.Sprintf("complete order %d", orderID), `
        UPDATE orders SET status = 'Completed', bukti = $2
        WHERE id = $1 AND status = 'Delivered'
    `, orderID, proof)
}

// ReplaceCourier - swap the courier of a Delivered order.
func (r *TxRepo) ReplaceCourier(ctx context.Context, orderID, courierID int64) error {
	return r.update(ctx, fmt.Sprintf("reassign order %d to courier %d", orderID, courierID), `
        UPDATE orders SET id_kurir = $2, kurir_assigned_at = now()
        WHERE id = $1 AND status = 'Delivered'
    `, orderID, courierID)
}

func (r *TxRepo) update(ctx context.Context, op, sql string, args ...any) error {
	ct, err := r.tx.Exec(ctx, sql, args...)
	if err != nil {
		// the one-delivery-per-courier index lost a race with a concurrent assignment
		if IsDuplicate(err) {
			return fmt.Errorf("%s: %w: %w", op, apperr.ErrTransientWriteConflict, err)
		}
		return classify(op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: order changed concurrently: %w", op, apperr.ErrTransientWriteConflict)
	}
	return nil
}
