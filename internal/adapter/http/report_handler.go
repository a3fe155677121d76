package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *usecase.Reports
}

func NewReportHandler(svc *usecase.Reports) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// SalesByCustomerAll: one rollup row per customer. An inverted date range is
// swapped by the engine, never rejected.
func (h *ReportHandler) SalesByCustomerAll(c *gin.Context) {
	start, err := dateParam(c, "startDate")
	if err != nil {
		fail(c, err)
		return
	}
	end, err := dateParam(c, "endDate")
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	rows, err := h.svc.SalesByCustomerAll(ctx, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// SalesByCustomer: order-level detail for the customer in the path.
func (h *ReportHandler) SalesByCustomer(c *gin.Context) {
	start, err := dateParam(c, "startDate")
	if err != nil {
		fail(c, err)
		return
	}
	end, err := dateParam(c, "endDate")
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.svc.SalesByCustomer(ctx, c.Param("customerId"), start, end)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ReportHandler) RevenueByPeriod(c *gin.Context) {
	start, err := dateParam(c, "startDate")
	if err != nil {
		fail(c, err)
		return
	}
	end, err := dateParam(c, "endDate")
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	buckets, err := h.svc.RevenueByPeriod(ctx, c.Query("groupBy"), start, end)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": buckets})
}
