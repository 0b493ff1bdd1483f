package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type pageParams struct {
	Page     int
	PageSize int
	Order    string
}

// pageFrom reads page, page_size, order_field and order_type. Only fields in
// orderable can be sorted on.
func pageFrom(c *gin.Context, orderable map[string]bool, defaultField string) pageParams {
	p := pageParams{Page: 1, PageSize: 10}
	if parsed, err := strconv.Atoi(c.Query("page")); err == nil && parsed > 0 {
		p.Page = parsed
	}
	if parsed, err := strconv.Atoi(c.Query("page_size")); err == nil && parsed > 0 && parsed <= 100 {
		p.PageSize = parsed
	}
	field := defaultField
	if of := c.Query("order_field"); orderable[of] {
		field = of
	}
	orderType := "desc"
	if ot := c.Query("order_type"); ot == "asc" || ot == "desc" {
		orderType = ot
	}
	p.Order = field + " " + orderType
	return p
}

func (p pageParams) apply(query *gorm.DB) *gorm.DB {
	return query.Order(p.Order).Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}

func (p pageParams) response(data interface{}, total int64) gin.H {
	totalPages := (total + int64(p.PageSize) - 1) / int64(p.PageSize)
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"current_page": p.Page,
			"page_size":    p.PageSize,
			"total_pages":  totalPages,
			"total_count":  total,
			"has_next":     p.Page < int(totalPages),
			"has_prev":     p.Page > 1,
		},
	}
}
