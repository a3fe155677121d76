package usecase

import (
	"context"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
)

// ListQuery is the normalized shape every repo listing consumes: an escaped
// LIKE pattern ("" = unfiltered), a whitelisted ordering and a page window.
type ListQuery struct {
	// Pattern is the output of LikePattern, ready for `LIKE ? ESCAPE '\\'`.
	Pattern string
	// IDTerm is set for order search when the raw term parses as a UUID,
	// enabling the exact order-id / customer-id match arm.
	IDTerm string
	Sort   Sort
	Limit  int
	Offset int
}

type CustomerRepo interface {
	Search(ctx context.Context, q ListQuery) ([]entity.Customer, int64, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Create(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) (bool, error)
}

type ProductRepo interface {
	Search(ctx context.Context, q ListQuery) ([]entity.Product, int64, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	// InUse reports whether any order line references the product.
	InUse(ctx context.Context, id string) (bool, error)
	// RefsByIDs resolves a distinct id set to price/title snapshots. Absent
	// ids are simply missing from the map; the caller decides what that means.
	RefsByIDs(ctx context.Context, ids []string) (map[string]entity.ProductRef, error)
}

type OrderRepo interface {
	Search(ctx context.Context, q ListQuery) ([]entity.Order, int64, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// Create persists the order header and all lines in one transaction.
	Create(ctx context.Context, o *entity.Order) error
	// ListBetween streams orders (with lines and customer names) whose
	// creation time falls inside the optional bounds, oldest first.
	ListBetween(ctx context.Context, start, end *time.Time) ([]entity.Order, error)
}

// CustomerCache memoizes customer reads. Implementations tie entries to a
// generation token; Invalidate advances it so prior entries read as misses.
type CustomerCache interface {
	GetSearch(key string) (CustomerPage, bool)
	SetSearch(key string, page CustomerPage)
	GetByID(id string) (entity.Customer, bool)
	SetByID(c entity.Customer)
	Invalidate()
}

// IdempotencyStore guards order creation against request replays.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}
