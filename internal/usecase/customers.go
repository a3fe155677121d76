package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/google/uuid"
)

// SearchInput carries the raw listing parameters as received; normalization
// happens inside the services so every caller gets identical clamping.
type SearchInput struct {
	Term      string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// cacheKey is the query shape: raw inputs, pre-normalization, so equal
// requests hit equal entries.
func (in SearchInput) cacheKey() string {
	return fmt.Sprintf("%s|%d|%d|%s|%s", in.Term, in.Page, in.PageSize, in.SortBy, in.SortOrder)
}

type CustomerPage struct {
	Items    []entity.Customer `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

type CustomerInput struct {
	Name      string
	Email     string
	Phone     string
	BirthDate time.Time
}

type Customers struct {
	repo  CustomerRepo
	cache CustomerCache
}

func NewCustomers(repo CustomerRepo, cache CustomerCache) *Customers {
	return &Customers{repo: repo, cache: cache}
}

func (s *Customers) Search(ctx context.Context, in SearchInput) (CustomerPage, error) {
	key := in.cacheKey()
	if page, ok := s.cache.GetSearch(key); ok {
		return page, nil
	}

	p := NormalizePage(in.Page, in.PageSize)
	q := ListQuery{
		Pattern: LikePattern(in.Term),
		Sort:    customerSort.Resolve(in.SortBy, in.SortOrder),
		Limit:   p.Size,
		Offset:  p.Offset(),
	}
	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return CustomerPage{}, err
	}
	if items == nil {
		items = []entity.Customer{}
	}
	page := CustomerPage{Items: items, Total: total, Page: p.Number, PageSize: p.Size}
	s.cache.SetSearch(key, page)
	return page, nil
}

func (s *Customers) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if c, ok := s.cache.GetByID(id); ok {
		return &c, nil
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetByID(*c)
	return c, nil
}

func (s *Customers) Create(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	c := &entity.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate.UTC().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	return c, nil
}

// Update is a full replace of the mutable fields.
func (s *Customers) Update(ctx context.Context, id string, in CustomerInput) (*entity.Customer, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate.UTC().Truncate(time.Second),
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	return c, nil
}

// Delete is unconditional for customers; only products carry a referential
// guard.
func (s *Customers) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrNotFound
	}
	s.cache.Invalidate()
	return nil
}
