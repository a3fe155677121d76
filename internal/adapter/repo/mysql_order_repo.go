package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/shopspring/decimal"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// orderFilter matches against the customer, any line's product, or (when the
// term is a UUID) the order/customer id exactly. The derived total is
// selected as an alias so it can drive ORDER BY without being stored.
const (
	orderSelect = `
SELECT o.id, o.customer_id, c.name, o.created_at, o.updated_at,
       COALESCE((SELECT SUM(l.line_total) FROM order_lines l WHERE l.order_id = o.id), 0) AS total
FROM orders o
JOIN customers c ON c.id = o.customer_id`

	orderFrom = `
FROM orders o
JOIN customers c ON c.id = o.customer_id`

	orderTermFilter = `LOWER(c.name) LIKE ? ESCAPE '\\' OR LOWER(c.email) LIKE ? ESCAPE '\\' OR LOWER(c.phone) LIKE ? ESCAPE '\\'
   OR EXISTS (SELECT 1 FROM order_lines l JOIN products p ON p.id = l.product_id
              WHERE l.order_id = o.id
                AND (LOWER(p.title) LIKE ? ESCAPE '\\' OR LOWER(p.description) LIKE ? ESCAPE '\\' OR LOWER(p.slug) LIKE ? ESCAPE '\\'))`
)

func (r *MySQLOrderRepo) Search(ctx context.Context, q usecase.ListQuery) ([]entity.Order, int64, error) {
	var conds []string
	var args []any
	if q.Pattern != "" {
		conds = append(conds, orderTermFilter)
		for i := 0; i < 6; i++ {
			args = append(args, q.Pattern)
		}
	}
	if q.IDTerm != "" {
		conds = append(conds, `o.id = ? OR o.customer_id = ?`)
		args = append(args, q.IDTerm, q.IDTerm)
	}
	where := ""
	if len(conds) > 0 {
		where = "\nWHERE (" + strings.Join(conds, "\n   OR ") + ")"
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+orderFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		orderSelect+where+"\nORDER BY "+q.Sort.OrderBy()+"\nLIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		var derivedTotal decimal.Decimal // only used for ordering
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CreatedAt, &o.UpdatedAt, &derivedTotal); err != nil {
			return nil, 0, err
		}
		o.CreatedAt = o.CreatedAt.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachLines(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT o.id, o.customer_id, c.name, o.created_at, o.updated_at
FROM orders o
JOIN customers c ON c.id = o.customer_id
WHERE o.id = ?`, id)
	var o entity.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()

	orders := []entity.Order{o}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// Create writes the header and every line in a single transaction: either
// the whole graph commits or nothing does.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id, customer_id, created_at, updated_at)
VALUES (?,?,?,?)`, o.ID, o.CustomerID, o.CreatedAt, o.UpdatedAt); err != nil {
		return err
	}
	for _, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_lines (id, order_id, product_id, quantity, line_total)
VALUES (?,?,?,?,?)`, l.ID, o.ID, l.ProductID, l.Quantity, l.Total); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) ListBetween(ctx context.Context, start, end *time.Time) ([]entity.Order, error) {
	var conds []string
	var args []any
	if start != nil {
		conds = append(conds, `o.created_at >= ?`)
		args = append(args, *start)
	}
	if end != nil {
		conds = append(conds, `o.created_at <= ?`)
		args = append(args, *end)
	}
	where := ""
	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.customer_id, c.name, o.created_at, o.updated_at
FROM orders o
JOIN customers c ON c.id = o.customer_id`+where+`
ORDER BY o.created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.CreatedAt = o.CreatedAt.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachLines loads lines for every order in the slice in one query. The
// product join is LEFT so a line never breaks rendering even if its product
// has somehow gone.
func (r *MySQLOrderRepo) attachLines(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	args := make([]any, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i := range orders {
		args[i] = orders[i].ID
		byID[orders[i].ID] = &orders[i]
		orders[i].Lines = []entity.OrderLine{}
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT l.id, l.order_id, l.product_id, COALESCE(p.title, ''), l.quantity, l.line_total
FROM order_lines l
LEFT JOIN products p ON p.id = l.product_id
WHERE l.order_id IN (`+placeholders(len(orders))+`)
ORDER BY l.id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.OrderLine
		var orderID string
		if err := rows.Scan(&line.ID, &orderID, &line.ProductID, &line.ProductTitle, &line.Quantity, &line.Total); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Lines = append(o.Lines, line)
		}
	}
	return rows.Err()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
