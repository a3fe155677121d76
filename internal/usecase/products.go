package usecase

import (
	"context"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductPage struct {
	Items    []entity.Product `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type ProductInput struct {
	Title       string
	Description string
	Slug        string
	Price       decimal.Decimal
}

// Products is deliberately uncached: read consistency is favored over
// latency for the catalog.
type Products struct {
	repo ProductRepo
}

func NewProducts(repo ProductRepo) *Products {
	return &Products{repo: repo}
}

func (s *Products) Search(ctx context.Context, in SearchInput) (ProductPage, error) {
	p := NormalizePage(in.Page, in.PageSize)
	q := ListQuery{
		Pattern: LikePattern(in.Term),
		Sort:    productSort.Resolve(in.SortBy, in.SortOrder),
		Limit:   p.Size,
		Offset:  p.Offset(),
	}
	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return ProductPage{}, err
	}
	if items == nil {
		items = []entity.Product{}
	}
	return ProductPage{Items: items, Total: total, Page: p.Number, PageSize: p.Size}, nil
}

func (s *Products) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Products) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Slug:        in.Slug,
		Price:       in.Price,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Products) Update(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	p := &entity.Product{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Slug:        in.Slug,
		Price:       in.Price,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete refuses to remove a product any order line still references, so
// historical orders keep rendering. That outcome is a conflict, distinct
// from not-found.
func (s *Products) Delete(ctx context.Context, id string) error {
	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return entity.ErrProductInUse
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrNotFound
	}
	return nil
}
