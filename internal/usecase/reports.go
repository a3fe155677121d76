package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/shopspring/decimal"
)

// Grouping selects the revenue bucket width.
type Grouping string

const (
	GroupDay   Grouping = "day"
	GroupMonth Grouping = "month"
	GroupYear  Grouping = "year"
)

// ParseGrouping accepts day|month|year case-insensitively; blank means day.
func ParseGrouping(s string) (Grouping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day":
		return GroupDay, nil
	case "month":
		return GroupMonth, nil
	case "year":
		return GroupYear, nil
	default:
		return "", fmt.Errorf("%w: groupBy must be day, month or year", entity.ErrInvalidInput)
	}
}

type CustomerSales struct {
	CustomerID         string          `json:"customerId"`
	CustomerName       string          `json:"customerName"`
	OrdersCount        int             `json:"ordersCount"`
	TotalItems         int             `json:"totalItems"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	AverageTicket      decimal.Decimal `json:"averageTicket"`
	LargestOrderTotal  decimal.Decimal `json:"largestOrderTotal"`
	SmallestOrderTotal decimal.Decimal `json:"smallestOrderTotal"`
	FirstOrderAt       time.Time       `json:"firstOrderAt"`
	LastOrderAt        time.Time       `json:"lastOrderAt"`
}

type CustomerOrderDetail struct {
	OrderID   string             `json:"orderId"`
	CreatedAt time.Time          `json:"createdAt"`
	Total     decimal.Decimal    `json:"total"`
	Lines     []entity.OrderLine `json:"lines"`
}

type CustomerSalesDetail struct {
	CustomerID   string                `json:"customerId"`
	CustomerName string                `json:"customerName"`
	Orders       []CustomerOrderDetail `json:"orders"`
	OrdersCount  int                   `json:"ordersCount"`
	TotalItems   int                   `json:"totalItems"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
}

type PeriodBucket struct {
	PeriodStart        time.Time       `json:"periodStart"`
	PeriodEnd          time.Time       `json:"periodEnd"`
	OrdersCount        int             `json:"ordersCount"`
	TotalItems         int             `json:"totalItems"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	AverageTicket      decimal.Decimal `json:"averageTicket"`
	LargestOrderTotal  decimal.Decimal `json:"largestOrderTotal"`
	SmallestOrderTotal decimal.Decimal `json:"smallestOrderTotal"`
}

// Reports aggregates orders in memory. It only ever reads; date filtering is
// pushed down to the repo, grouping and the statistics happen here.
type Reports struct {
	orders    OrderRepo
	customers CustomerRepo
}

func NewReports(orders OrderRepo, customers CustomerRepo) *Reports {
	return &Reports{orders: orders, customers: customers}
}

// NormalizeRange converts both bounds to UTC and swaps them when start is
// after end. An inverted range is repaired, never rejected.
func NormalizeRange(start, end *time.Time) (*time.Time, *time.Time) {
	if start != nil {
		s := start.UTC()
		start = &s
	}
	if end != nil {
		e := end.UTC()
		end = &e
	}
	if start != nil && end != nil && start.After(*end) {
		start, end = end, start
	}
	return start, end
}

// SalesByCustomerAll returns one rollup row per customer that ordered inside
// the range, sorted by total amount descending then name ascending.
func (r *Reports) SalesByCustomerAll(ctx context.Context, start, end *time.Time) ([]CustomerSales, error) {
	start, end = NormalizeRange(start, end)
	orders, err := r.orders.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	acc := make(map[string]*salesAcc)
	for i := range orders {
		o := &orders[i]
		a, ok := acc[o.CustomerID]
		if !ok {
			a = &salesAcc{name: o.CustomerName}
			acc[o.CustomerID] = a
		}
		a.add(o)
	}

	rows := make([]CustomerSales, 0, len(acc))
	for id, a := range acc {
		rows = append(rows, CustomerSales{
			CustomerID:         id,
			CustomerName:       a.name,
			OrdersCount:        a.count,
			TotalItems:         a.items,
			TotalAmount:        a.total.Round(2),
			AverageTicket:      a.average().Round(2),
			LargestOrderTotal:  a.largest.Round(2),
			SmallestOrderTotal: a.smallest.Round(2),
			FirstOrderAt:       a.first,
			LastOrderAt:        a.last,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].TotalAmount.Cmp(rows[j].TotalAmount); c != 0 {
			return c > 0
		}
		return rows[i].CustomerName < rows[j].CustomerName
	})
	return rows, nil
}

// SalesByCustomer returns order-level detail plus a rollup for one customer.
// An unknown customer is a not-found outcome, even with zero orders in range.
func (r *Reports) SalesByCustomer(ctx context.Context, customerID string, start, end *time.Time) (*CustomerSalesDetail, error) {
	customer, err := r.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	start, end = NormalizeRange(start, end)
	orders, err := r.orders.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	detail := &CustomerSalesDetail{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Orders:       []CustomerOrderDetail{},
		TotalAmount:  decimal.Zero,
	}
	total := decimal.Zero
	for i := range orders {
		o := &orders[i]
		if o.CustomerID != customerID {
			continue
		}
		detail.Orders = append(detail.Orders, CustomerOrderDetail{
			OrderID:   o.ID,
			CreatedAt: o.CreatedAt,
			Total:     o.Total().Round(2),
			Lines:     o.Lines,
		})
		detail.OrdersCount++
		detail.TotalItems += o.Items()
		total = total.Add(o.Total())
	}
	detail.TotalAmount = total.Round(2)
	return detail, nil
}

// RevenueByPeriod groups orders into contiguous UTC buckets by truncating
// each creation timestamp to the start of its day, month or year. The bucket
// end is inclusive: the next period start minus one second, matching the
// second-granularity rendering of timestamps.
func (r *Reports) RevenueByPeriod(ctx context.Context, groupBy string, start, end *time.Time) ([]PeriodBucket, error) {
	grouping, err := ParseGrouping(groupBy)
	if err != nil {
		return nil, err
	}
	start, end = NormalizeRange(start, end)
	orders, err := r.orders.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	acc := make(map[time.Time]*salesAcc)
	for i := range orders {
		o := &orders[i]
		bucket := truncateToPeriod(o.CreatedAt, grouping)
		a, ok := acc[bucket]
		if !ok {
			a = &salesAcc{}
			acc[bucket] = a
		}
		a.add(o)
	}

	buckets := make([]PeriodBucket, 0, len(acc))
	for startAt, a := range acc {
		buckets = append(buckets, PeriodBucket{
			PeriodStart:        startAt,
			PeriodEnd:          nextPeriod(startAt, grouping).Add(-time.Second),
			OrdersCount:        a.count,
			TotalItems:         a.items,
			TotalAmount:        a.total.Round(2),
			AverageTicket:      a.average().Round(2),
			LargestOrderTotal:  a.largest.Round(2),
			SmallestOrderTotal: a.smallest.Round(2),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})
	return buckets, nil
}

// salesAcc accumulates one group's statistics. Monetary rounding happens
// once, when the accumulator is read out, never on intermediate sums.
type salesAcc struct {
	name     string
	count    int
	items    int
	total    decimal.Decimal
	largest  decimal.Decimal
	smallest decimal.Decimal
	first    time.Time
	last     time.Time
}

func (a *salesAcc) add(o *entity.Order) {
	t := o.Total()
	if a.count == 0 || t.GreaterThan(a.largest) {
		a.largest = t
	}
	if a.count == 0 || t.LessThan(a.smallest) {
		a.smallest = t
	}
	if a.count == 0 || o.CreatedAt.Before(a.first) {
		a.first = o.CreatedAt
	}
	if a.count == 0 || o.CreatedAt.After(a.last) {
		a.last = o.CreatedAt
	}
	a.count++
	a.items += o.Items()
	a.total = a.total.Add(t)
}

func (a *salesAcc) average() decimal.Decimal {
	if a.count == 0 {
		return decimal.Zero
	}
	return a.total.Div(decimal.NewFromInt(int64(a.count)))
}

func truncateToPeriod(t time.Time, g Grouping) time.Time {
	t = t.UTC()
	switch g {
	case GroupMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GroupYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func nextPeriod(start time.Time, g Grouping) time.Time {
	switch g {
	case GroupMonth:
		return start.AddDate(0, 1, 0)
	case GroupYear:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
