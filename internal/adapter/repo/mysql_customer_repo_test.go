package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerQuery(pattern string) usecase.ListQuery {
	return usecase.ListQuery{
		Pattern: pattern,
		Sort:    usecase.Sort{Terms: []usecase.SortTerm{{Column: "name"}, {Column: "id"}}},
		Limit:   25,
		Offset:  0,
	}
}

func TestCustomerSearchWithTerm(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewMySQLCustomerRepo(db)

	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	pattern := `%ann%`

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers WHERE`).
		WithArgs(pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, name, email, phone, birth_date FROM customers WHERE .* ORDER BY name ASC, id ASC LIMIT \? OFFSET \?`).
		WithArgs(pattern, pattern, pattern, 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "birth_date"}).
			AddRow("c1", "Anna", "anna@example.com", "555-0101", birth))

	items, total, err := r.Search(context.Background(), customerQuery(pattern))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Anna", items[0].Name)
	assert.True(t, items[0].BirthDate.Equal(birth))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSearchWithoutTermSkipsFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewMySQLCustomerRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, name, email, phone, birth_date FROM customers ORDER BY`).
		WithArgs(25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "birth_date"}))

	items, total, err := r.Search(context.Background(), customerQuery(""))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewMySQLCustomerRepo(db)

	mock.ExpectQuery(`SELECT id, name, email, phone, birth_date FROM customers WHERE id = \?`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = r.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewMySQLCustomerRepo(db)

	mock.ExpectExec(`DELETE FROM customers WHERE id = \?`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := r.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(`DELETE FROM customers WHERE id = \?`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = r.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
