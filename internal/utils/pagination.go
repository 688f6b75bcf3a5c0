package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/constants"
)

// PaginationParams is a 1-based page window
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// NewPaginationParams clamps page and limit into range and derives the offset
func NewPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPaginationParams reads ?page= and ?page_size= (or the older ?limit=) from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.Query("page"))

	size := c.Query("page_size")
	if size == "" {
		size = c.Query("limit")
	}
	limit, _ := strconv.Atoi(size)

	return NewPaginationParams(page, limit)
}

// TotalPages is the number of pages of size limit needed to hold total rows
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
