package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/logging"
	"github.com/aq2208/backoffice-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest mirrors nginx's 499: the caller went away.
const statusClientClosedRequest = 499

// fail maps the error taxonomy onto HTTP statuses. Cancellation is kept
// distinct from failure; nothing is ever retried here.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		c.AbortWithStatusJSON(statusClientClosedRequest, gin.H{"error": "request_canceled"})
	case errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": "timeout"})
	case errors.Is(err, entity.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, entity.ErrProductInUse):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "in_use"})
	case errors.Is(err, usecase.ErrDuplicateRequest):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate_request"})
	case errors.Is(err, entity.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
	default:
		logging.From(c).Error("request failed", "err", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

// listInput pulls the listing parameters off the query string. Bad numbers
// come through as zero; the normalizer turns them into defaults.
func listInput(c *gin.Context) usecase.SearchInput {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return usecase.SearchInput{
		Term:      c.Query("term"),
		Page:      page,
		PageSize:  size,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// dateParam parses an optional date query parameter. Values without a zone
// are taken as UTC.
func dateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD", entity.ErrInvalidInput, name)
}
