package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

const productFilter = ` WHERE (LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(slug) LIKE ? ESCAPE '\\')`

func (r *MySQLProductRepo) Search(ctx context.Context, q usecase.ListQuery) ([]entity.Product, int64, error) {
	where := ""
	var args []any
	if q.Pattern != "" {
		where = productFilter
		args = append(args, q.Pattern, q.Pattern, q.Pattern)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, slug, price
FROM products`+where+`
ORDER BY `+q.Sort.OrderBy()+`
LIMIT ? OFFSET ?`, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Slug, &p.Price); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, slug, price
FROM products WHERE id = ?`, id)
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Slug, &p.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO products (id, title, description, slug, price)
VALUES (?,?,?,?,?)`, p.ID, p.Title, p.Description, p.Slug, p.Price)
	return err
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE products SET title = ?, description = ?, slug = ?, price = ?
WHERE id = ?`, p.Title, p.Description, p.Slug, p.Price, p.ID)
	return err
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLProductRepo) InUse(ctx context.Context, id string) (bool, error) {
	var used bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_lines WHERE product_id = ?)`, id).Scan(&used)
	return used, err
}

func (r *MySQLProductRepo) RefsByIDs(ctx context.Context, ids []string) (map[string]entity.ProductRef, error) {
	refs := make(map[string]entity.ProductRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, price FROM products WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref entity.ProductRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Price); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}
	return refs, rows.Err()
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
