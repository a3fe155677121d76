package usecase

import (
	"context"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
)

type stubCustomerRepo struct {
	byID map[string]entity.Customer
}

func (s *stubCustomerRepo) Search(context.Context, ListQuery) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (s *stubCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if c, ok := s.byID[id]; ok {
		return &c, nil
	}
	return nil, entity.ErrNotFound
}

func (s *stubCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	s.byID[c.ID] = *c
	return nil
}

func (s *stubCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	s.byID[c.ID] = *c
	return nil
}

func (s *stubCustomerRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

type stubProductRepo struct {
	refs  map[string]entity.ProductRef
	inUse bool
}

func (s *stubProductRepo) Search(context.Context, ListQuery) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if ref, ok := s.refs[id]; ok {
		return &entity.Product{ID: ref.ID, Title: ref.Title, Price: ref.Price}, nil
	}
	return nil, entity.ErrNotFound
}

func (s *stubProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (s *stubProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (s *stubProductRepo) Delete(context.Context, string) (bool, error)  { return true, nil }

func (s *stubProductRepo) InUse(context.Context, string) (bool, error) { return s.inUse, nil }

func (s *stubProductRepo) RefsByIDs(_ context.Context, ids []string) (map[string]entity.ProductRef, error) {
	out := make(map[string]entity.ProductRef)
	for _, id := range ids {
		if ref, ok := s.refs[id]; ok {
			out[id] = ref
		}
	}
	return out, nil
}

type stubOrderRepo struct {
	orders    []entity.Order
	created   []*entity.Order
	gotStart  *time.Time
	gotEnd    *time.Time
	lastQuery ListQuery
}

func (s *stubOrderRepo) Search(_ context.Context, q ListQuery) ([]entity.Order, int64, error) {
	s.lastQuery = q
	return nil, 0, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range s.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *stubOrderRepo) Create(_ context.Context, o *entity.Order) error {
	s.created = append(s.created, o)
	return nil
}

func (s *stubOrderRepo) ListBetween(_ context.Context, start, end *time.Time) ([]entity.Order, error) {
	s.gotStart, s.gotEnd = start, end
	var out []entity.Order
	for _, o := range s.orders {
		if start != nil && o.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && o.CreatedAt.After(*end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type stubIdem struct {
	locked     map[string]bool
	remembered map[string]string
}

func newStubIdem() *stubIdem {
	return &stubIdem{locked: map[string]bool{}, remembered: map[string]string{}}
}

func (s *stubIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if s.locked[k] {
		return false, nil
	}
	s.locked[k] = true
	return true, nil
}

func (s *stubIdem) Remember(_ context.Context, scope, key, value string) error {
	s.remembered[scope+":"+key] = value
	return nil
}

func (s *stubIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.remembered[scope+":"+key]
	return v, ok, nil
}
