package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/aq2208/backoffice-api/internal/adapter/cache"
	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCustomerRepo is a map-backed CustomerRepo that counts searches, enough
// to observe cache hits and invalidation from the outside.
type memCustomerRepo struct {
	items    []entity.Customer
	searches int
}

func (r *memCustomerRepo) Search(_ context.Context, q usecase.ListQuery) ([]entity.Customer, int64, error) {
	r.searches++
	out := make([]entity.Customer, len(r.items))
	copy(out, r.items)
	return out, int64(len(out)), nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range r.items {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.items = append(r.items, *c)
	return nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	for i := range r.items {
		if r.items[i].ID == c.ID {
			r.items[i] = *c
		}
	}
	return nil
}

func (r *memCustomerRepo) Delete(_ context.Context, id string) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newCustomersFixture() (*usecase.Customers, *memCustomerRepo) {
	repo := &memCustomerRepo{}
	return usecase.NewCustomers(repo, cache.NewCustomerCache(time.Minute)), repo
}

func TestCustomerRoundTrip(t *testing.T) {
	svc, _ := newCustomersFixture()
	ctx := context.Background()

	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, usecase.CustomerInput{
		Name: "Anna", Email: "anna@example.com", Phone: "555-0101", BirthDate: birth,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	updated, err := svc.Update(ctx, created.ID, usecase.CustomerInput{
		Name: "Anna B", Email: "anna.b@example.com", Phone: "555-0102", BirthDate: birth,
	})
	require.NoError(t, err)
	got, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCustomerSearchIsCached(t *testing.T) {
	svc, repo := newCustomersFixture()
	ctx := context.Background()

	in := usecase.SearchInput{Term: "ann", Page: 1, PageSize: 10}
	_, err := svc.Search(ctx, in)
	require.NoError(t, err)
	_, err = svc.Search(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searches, "identical query shape served from cache")

	// a different query shape misses
	_, err = svc.Search(ctx, usecase.SearchInput{Term: "ann", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searches)
}

func TestFreshWriteIsNeverMaskedByCache(t *testing.T) {
	svc, _ := newCustomersFixture()
	ctx := context.Background()

	in := usecase.SearchInput{Term: ""}
	page, err := svc.Search(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = svc.Create(ctx, usecase.CustomerInput{Name: "Carla", Email: "carla@example.com"})
	require.NoError(t, err)

	page, err = svc.Search(ctx, in)
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "write invalidated the earlier cached page")
	assert.Equal(t, "Carla", page.Items[0].Name)
}

func TestDeleteUnknownCustomer(t *testing.T) {
	svc, _ := newCustomersFixture()
	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSearchReturnsEmptySliceNotNil(t *testing.T) {
	svc, _ := newCustomersFixture()
	page, err := svc.Search(context.Background(), usecase.SearchInput{Term: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 25, page.PageSize)
}
