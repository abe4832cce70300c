package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

const queryDateLayout = "2006-01-02"

// pageParams reads page and page_size; the service clamps the values.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, size
}

// optionalDate parses a YYYY-MM-DD query parameter, returning nil when absent.
func optionalDate(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, key+" must use YYYY-MM-DD")
	}
	return &parsed, nil
}

// ledgerFilter reads the shared income/expense listing parameters.
func ledgerFilter(c *gin.Context) (models.LedgerFilter, error) {
	var filter models.LedgerFilter
	from, err := optionalDate(c, "from")
	if err != nil {
		return filter, err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to
	filter.Category = strings.TrimSpace(c.Query("category"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.PageSize = pageParams(c)
	return filter, nil
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		abortWithError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func requestMeta(c *gin.Context) models.LoginRequest {
	return models.LoginRequest{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}
