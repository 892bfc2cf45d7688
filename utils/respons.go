package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PageMeta   `json:"meta,omitempty"`
}

// PageMeta mirrors the pagination envelope of the legacy API (totalDocs).
type PageMeta struct {
	TotalDocs  int64 `json:"totalDocs"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func NewPageMeta(totalDocs int64, page, limit int) *PageMeta {
	totalPages := totalDocs / int64(limit)
	if totalDocs%int64(limit) != 0 {
		totalPages++
	}
	return &PageMeta{
		TotalDocs:  totalDocs,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// ParsePagination reads ?page= and ?limit= with sane defaults.
func ParsePagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondPage(c *gin.Context, code int, message string, data interface{}, meta *PageMeta) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}
