package models

import (
	"github.com/gin-gonic/gin"
)

type ApiResponse struct {
	Message         string            `json:"message"`
	Data            any               `json:"data,omitempty"`
	Error           bool              `json:"error,omitempty"`
	Fields          map[string]string `json:"fields,omitempty"`
	Meta            *Pagination       `json:"meta,omitempty"`
	Rate            *RateLimit        `json:"rate_limit,omitempty"`
	RequestedEntity string            `json:"requested_entity,omitempty"`
}

type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"10"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"total_pages" example:"5"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{Page: page, Limit: limit, Total: int(total), TotalPages: pages}
}

// RateLimitContextKey is where the rate limiter leaves its RateLimit.
const RateLimitContextKey = "rateLimit"

// RateLimit describes the caller's budget on a rate limited route.
type RateLimit struct {
	Scope          string `json:"scope" example:"auth"`
	Limit          int    `json:"limit" example:"10"`
	Remaining      int    `json:"remaining" example:"9"`
	ResetInSeconds int    `json:"reset_in_seconds" example:"60"`
}

func getRateFromContext(c *gin.Context) *RateLimit {
	if c == nil {
		return nil
	}
	if rate, exists := c.Get(RateLimitContextKey); exists {
		if rl, ok := rate.(*RateLimit); ok {
			return rl
		}
	}
	return nil
}

func requestedEntity(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Method + " " + c.FullPath()
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Meta:            meta,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	return ApiResponse{
		Message:         message,
		Error:           true,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

// FieldErrorResponse reports input that failed validation on a single field.
func FieldErrorResponse(c *gin.Context, message, field, fieldMessage string) ApiResponse {
	resp := ErrorResponse(c, message)
	resp.Fields = map[string]string{field: fieldMessage}
	return resp
}
