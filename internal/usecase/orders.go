package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrDuplicateRequest: another request holding the same idempotency key is
// in flight or already completed without a recallable result.
var ErrDuplicateRequest = errors.New("duplicate request")

type OrderPage struct {
	Items    []entity.Order `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type OrderLineInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	CustomerID     string
	Lines          []OrderLineInput
	IdempotencyKey string
}

type Orders struct {
	repo      OrderRepo
	customers CustomerRepo
	products  ProductRepo
	idem      IdempotencyStore
}

func NewOrders(repo OrderRepo, customers CustomerRepo, products ProductRepo, idem IdempotencyStore) *Orders {
	return &Orders{repo: repo, customers: customers, products: products, idem: idem}
}

func (s *Orders) Search(ctx context.Context, in SearchInput) (OrderPage, error) {
	p := NormalizePage(in.Page, in.PageSize)
	q := ListQuery{
		Pattern: LikePattern(in.Term),
		Sort:    orderSort.Resolve(in.SortBy, in.SortOrder),
		Limit:   p.Size,
		Offset:  p.Offset(),
	}
	// A term that parses as a UUID additionally matches the order id or
	// customer id exactly.
	if term := in.Term; term != "" {
		if _, err := uuid.Parse(term); err == nil {
			q.IDTerm = term
		}
	}
	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return OrderPage{}, err
	}
	if items == nil {
		items = []entity.Order{}
	}
	return OrderPage{Items: items, Total: total, Page: p.Number, PageSize: p.Size}, nil
}

func (s *Orders) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the whole graph before persisting anything: non-empty
// lines, positive quantities, an existing customer and a fully resolved
// distinct product set. Line totals are snapshotted at the current product
// price; the order is then written atomically.
func (s *Orders) Create(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if in.IdempotencyKey != "" {
		if id, ok, _ := s.idem.Recall(ctx, in.CustomerID, in.IdempotencyKey); ok {
			return s.repo.GetByID(ctx, id)
		}
	}

	order, err := s.buildOrder(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		ok, err := s.idem.TryLock(ctx, in.CustomerID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDuplicateRequest
		}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	if in.IdempotencyKey != "" {
		_ = s.idem.Remember(ctx, in.CustomerID, in.IdempotencyKey, order.ID)
	}
	return order, nil
}

func (s *Orders) buildOrder(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", entity.ErrInvalidInput)
	}
	distinct := make([]string, 0, len(in.Lines))
	seen := make(map[string]bool, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %s", entity.ErrInvalidInput, l.ProductID)
		}
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			distinct = append(distinct, l.ProductID)
		}
	}

	customer, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s does not exist", entity.ErrInvalidInput, in.CustomerID)
		}
		return nil, err
	}

	refs, err := s.products.RefsByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	// Set check: every distinct requested id must have resolved.
	if len(refs) != len(distinct) {
		for _, id := range distinct {
			if _, ok := refs[id]; !ok {
				return nil, fmt.Errorf("%w: product %s does not exist", entity.ErrInvalidInput, id)
			}
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	order := &entity.Order{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
		Lines:        make([]entity.OrderLine, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		ref := refs[l.ProductID]
		order.Lines = append(order.Lines, entity.OrderLine{
			ID:           uuid.NewString(),
			ProductID:    ref.ID,
			ProductTitle: ref.Title,
			Quantity:     l.Quantity,
			Total:        ref.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}
	return order, nil
}
