package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	svc *usecase.Products
}

func NewProductHandler(svc *usecase.Products) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productReq struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Slug        string          `json:"slug" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

func (req productReq) input() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		Price:       req.Price,
	}
}

func (h *ProductHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	page, err := h.svc.Search(ctx, listInput(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	product, err := h.svc.GetByID(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	product, err := h.svc.Create(ctx, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	product, err := h.svc.Update(ctx, c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete: a product still referenced by order lines answers 409, not 404,
// and stays in place.
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
