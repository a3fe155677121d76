package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productRepoStub struct {
	inUse   bool
	deleted bool
}

func (s *productRepoStub) Search(context.Context, usecase.ListQuery) ([]entity.Product, int64, error) {
	return nil, 0, nil
}
func (s *productRepoStub) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, entity.ErrNotFound
}
func (s *productRepoStub) Create(context.Context, *entity.Product) error { return nil }
func (s *productRepoStub) Update(context.Context, *entity.Product) error { return nil }
func (s *productRepoStub) Delete(context.Context, string) (bool, error)  { return s.deleted, nil }
func (s *productRepoStub) InUse(context.Context, string) (bool, error)   { return s.inUse, nil }
func (s *productRepoStub) RefsByIDs(context.Context, []string) (map[string]entity.ProductRef, error) {
	return map[string]entity.ProductRef{}, nil
}

type orderRepoStub struct{}

func (orderRepoStub) Search(context.Context, usecase.ListQuery) ([]entity.Order, int64, error) {
	return nil, 0, nil
}
func (orderRepoStub) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, entity.ErrNotFound
}
func (orderRepoStub) Create(context.Context, *entity.Order) error { return nil }
func (orderRepoStub) ListBetween(context.Context, *time.Time, *time.Time) ([]entity.Order, error) {
	return nil, nil
}

type customerRepoStub struct{}

func (customerRepoStub) Search(context.Context, usecase.ListQuery) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}
func (customerRepoStub) GetByID(context.Context, string) (*entity.Customer, error) {
	return nil, entity.ErrNotFound
}
func (customerRepoStub) Create(context.Context, *entity.Customer) error { return nil }
func (customerRepoStub) Update(context.Context, *entity.Customer) error { return nil }
func (customerRepoStub) Delete(context.Context, string) (bool, error)   { return false, nil }

func productRouter(repo *productRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(usecase.NewProducts(repo))
	r := gin.New()
	r.POST("/v1/products", h.Create)
	r.DELETE("/v1/products/:id", h.Delete)
	return r
}

func TestProductDeleteInUse(t *testing.T) {
	r := productRouter(&productRepoStub{inUse: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/products/p1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"in_use"}`, w.Body.String())
}

func TestProductDeleteUnknown(t *testing.T) {
	r := productRouter(&productRepoStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/products/ghost", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductCreateRejectsMissingTitle(t *testing.T) {
	r := productRouter(&productRepoStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/products",
		strings.NewReader(`{"slug":"kb","price":10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request"}`, w.Body.String())
}

func reportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(usecase.NewReports(orderRepoStub{}, customerRepoStub{}))
	r := gin.New()
	r.GET("/v1/reports/revenue", h.RevenueByPeriod)
	return r
}

func TestRevenueReportRejectsUnknownGrouping(t *testing.T) {
	r := reportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/revenue?groupBy=week", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestRevenueReportRejectsBadDate(t *testing.T) {
	r := reportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/revenue?startDate=01-02-2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevenueReportAcceptsPlainDates(t *testing.T) {
	r := reportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/v1/reports/revenue?groupBy=day&startDate=2025-01-01&endDate=2025-01-31", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}
