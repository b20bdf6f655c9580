// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response envelope used across all endpoints. Every
// response body, success or failure, is wrapped in the same shape so clients
// can branch on a single `success` flag:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "count": 4, "data": [ ... ] }
//
//	HTTP/1.1 404 Not Found
//	{ "success": false, "message": "Vendor not found" }
//
// fail() centralizes error formatting and guarantees that 5xx responses are
// logged with request context while the body carries only a fixed,
// operation-specific message — internal error detail never reaches the
// caller.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendstack/vendor-api/internal/http/middleware"
)

// Response is the uniform envelope for every endpoint.
//
// Fields:
//   - Success: true for 2xx outcomes, false otherwise.
//   - Count: number of records, only present on list responses.
//   - Message: human-readable text; the only payload on failures, and an
//     informational extra on delete success.
//   - Data: the operation result; an empty object on delete success.
type Response struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ok writes a success envelope with the given status and data payload.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

// okList writes a success envelope for list responses, including the record
// count alongside the data array.
func okList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Count: &count, Data: data})
}

// fail aborts the request with a failure envelope carrying only the fixed
// message. The underlying error, when given, is logged server-side for 5xx
// responses and never exposed to the caller.
func fail(c *gin.Context, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Err(err).
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, Response{Success: false, Message: msg})
}

// Fail is the exported variant of fail for use outside the package (e.g.
// router fallbacks), keeping the envelope consistent without exposing
// unexported helpers.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg, nil) }
