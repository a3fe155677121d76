package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	svc *usecase.Orders
}

func NewOrderHandler(svc *usecase.Orders) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderLineReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type createOrderReq struct {
	CustomerID string         `json:"customerId" binding:"required"`
	Lines      []orderLineReq `json:"lines"`
}

// orderView adds the derived total to the wire shape; it is computed from
// the line snapshots on every render, never stored.
type orderView struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Total        decimal.Decimal    `json:"total"`
	Lines        []entity.OrderLine `json:"lines"`
}

type orderPageView struct {
	Items    []orderView `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func newOrderView(o *entity.Order) orderView {
	return orderView{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Total:        o.Total().Round(2),
		Lines:        o.Lines,
	}
}

func (h *OrderHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	page, err := h.svc.Search(ctx, listInput(c))
	if err != nil {
		fail(c, err)
		return
	}
	items := make([]orderView, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, newOrderView(&page.Items[i]))
	}
	c.JSON(http.StatusOK, orderPageView{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, err := h.svc.GetByID(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderView(order))
}

// Create accepts an optional X-Idempotency-Key so retried requests do not
// produce duplicate orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	in := usecase.CreateOrderInput{
		CustomerID:     req.CustomerID,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, usecase.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.svc.Create(ctx, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderView(order))
}
