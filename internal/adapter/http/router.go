package http

import (
	"github.com/aq2208/backoffice-api/internal/adapter/http/middleware"
	"github.com/aq2208/backoffice-api/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Customers *CustomerHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Reports   *ReportHandler
	Token     *TokenHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", h.Token.IssueToken)

	v1 := r.Group("/v1")
	{
		read := authz.Require("catalog.read")
		write := authz.Require("catalog.write")

		v1.GET("/customers", read, h.Customers.Search)
		v1.GET("/customers/:id", read, h.Customers.GetByID)
		v1.POST("/customers", write, h.Customers.Create)
		v1.PUT("/customers/:id", write, h.Customers.Update)
		v1.DELETE("/customers/:id", write, h.Customers.Delete)

		v1.GET("/products", read, h.Products.Search)
		v1.GET("/products/:id", read, h.Products.GetByID)
		v1.POST("/products", write, h.Products.Create)
		v1.PUT("/products/:id", write, h.Products.Update)
		v1.DELETE("/products/:id", write, h.Products.Delete)

		v1.GET("/orders", read, h.Orders.Search)
		v1.GET("/orders/:id", read, h.Orders.GetByID)
		v1.POST("/orders", write, h.Orders.Create)

		reports := authz.Require("reports.read")
		v1.GET("/reports/sales-by-customer", reports, h.Reports.SalesByCustomerAll)
		v1.GET("/reports/sales-by-customer/:customerId", reports, h.Reports.SalesByCustomer)
		v1.GET("/reports/revenue-by-period", reports, h.Reports.RevenueByPeriod)
	}

	return r
}
