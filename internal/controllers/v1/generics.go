package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// defaultLimit is the number of resources returned by list endpoints if
// no limit is requested.
const defaultLimit = 50

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.Company | models.Device | models.Event](co Controller, c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// paginate sets offset and limit for the query and returns the
// limit in effect. limit is only used if it is set in the query string.
func paginate(q *gorm.DB, setFields []string, offset uint, limit int) (*gorm.DB, int) {
	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(offset))

	l := defaultLimit
	if slices.Contains(setFields, "Limit") {
		l = limit
	}

	return q.Limit(l), l
}

// contains returns a LIKE pattern matching value anywhere in a lowercased
// column.
func contains(value string) string {
	return fmt.Sprintf("%%%s%%", strings.ToLower(value))
}

// list paginates the query, loads the resources and transforms them to
// their API representation. The scopes are only applied when loading the
// resources, not when counting them.
func list[M any, A any](c *gin.Context, q *gorm.DB, setFields []string, offset uint, limit int, transform func(*gin.Context, M) A, scopes ...func(*gorm.DB) *gorm.DB) ([]A, *Pagination, error) {
	var count int64
	var model M
	err := q.Session(&gorm.Session{}).Model(&model).Count(&count).Error
	if err != nil {
		return nil, nil, err
	}

	q, limit = paginate(q.Session(&gorm.Session{}), setFields, offset, limit)

	var resources []M
	err = q.Scopes(scopes...).Find(&resources).Error
	if err != nil {
		return nil, nil, err
	}

	data := make([]A, 0, len(resources))
	for _, r := range resources {
		data = append(data, transform(c, r))
	}

	return data, &Pagination{
		Count:  len(data),
		Total:  count,
		Offset: offset,
		Limit:  limit,
	}, nil
}
