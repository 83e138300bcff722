package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bakery-dispatch/internal/domain"
)

// rosterSQL derives each courier's load from the orders table.
// The last status is taken from the most recently assigned order.
const rosterSQL = `
    SELECT
        k.id, k.nama, k.user_name, k.no_hp,
        EXISTS (
            SELECT 1 FROM orders o WHERE o.id_kurir = k.id AND o.status = 'Delivered'
        ) AS busy,
        (SELECT COUNT(*) FROM orders o WHERE o.id_kurir = k.id) AS assignments,
        COALESCE((
            SELECT o.status FROM orders o
            WHERE o.id_kurir = k.id
            ORDER BY o.kurir_assigned_at DESC NULLS LAST, o.id DESC
            LIMIT 1
        ), '') AS last_status
    FROM kurir k
`

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns courier with its load by ID, nil if it does not exist.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.CourierLoad, error) {
	list, err := queryRoster(ctx, r.db, rosterSQL+` WHERE k.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// Roster returns every courier with its load, ordered by id.
func (r *CourierRepo) Roster(ctx context.Context) ([]domain.CourierLoad, error) {
	list, err := queryRoster(ctx, r.db, rosterSQL+` ORDER BY k.id`)
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}
	return list, nil
}

func queryRoster(ctx context.Context, q querier, sql string, args ...any) ([]domain.CourierLoad, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CourierLoad, 0)
	for rows.Next() {
		var (
			c    domain.CourierLoad
			last string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Username, &c.Phone, &c.Busy, &c.Assignments, &last); err != nil {
			return nil, err
		}
		c.LastStatus = domain.OrderStatus(last)
		out = append(out, c)
	}
	return out, rows.Err()
}
