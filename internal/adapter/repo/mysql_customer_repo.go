package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

const customerFilter = ` WHERE (LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(phone) LIKE ? ESCAPE '\\')`

func (r *MySQLCustomerRepo) Search(ctx context.Context, q usecase.ListQuery) ([]entity.Customer, int64, error) {
	where := ""
	var args []any
	if q.Pattern != "" {
		where = customerFilter
		args = append(args, q.Pattern, q.Pattern, q.Pattern)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, phone, birth_date
FROM customers`+where+`
ORDER BY `+q.Sort.OrderBy()+`
LIMIT ? OFFSET ?`, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BirthDate); err != nil {
			return nil, 0, err
		}
		c.BirthDate = c.BirthDate.UTC()
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *MySQLCustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, phone, birth_date
FROM customers WHERE id = ?`, id)
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BirthDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	c.BirthDate = c.BirthDate.UTC()
	return &c, nil
}

func (r *MySQLCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO customers (id, name, email, phone, birth_date)
VALUES (?,?,?,?,?)`, c.ID, c.Name, c.Email, c.Phone, c.BirthDate)
	return err
}

func (r *MySQLCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE customers SET name = ?, email = ?, phone = ?, birth_date = ?
WHERE id = ?`, c.Name, c.Email, c.Phone, c.BirthDate, c.ID)
	return err
}

func (r *MySQLCustomerRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
