// Package api holds the HTTP error envelope and shared middleware.
package api

import "github.com/gin-gonic/gin"

// Error codes by failure origin.
const (
	CodeBadInput              = "bad_input"
	CodeNotFound              = "not_found"
	CodeDependencyUnavailable = "dependency_unavailable"
	CodeRenderFailure         = "render_failure"
	CodeInternal              = "internal"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError sends the error envelope with the given status.
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Status: status, Code: code, Message: message})
}
