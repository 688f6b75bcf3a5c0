package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// codeStatus maps each error code to its HTTP status and fallback message
var codeStatus = map[string]struct {
	status  int
	message string
}{
	ErrCodeUnauthorized:       {http.StatusUnauthorized, "Authentication required"},
	ErrCodeInvalidCredentials: {http.StatusUnauthorized, "Invalid email or password"},
	ErrCodeInvalidInput:       {http.StatusBadRequest, "Invalid request"},
	ErrCodeNotFound:           {http.StatusNotFound, "Resource not found"},
	ErrCodeConflict:           {http.StatusConflict, "Resource conflict"},
	ErrCodeInternalError:      {http.StatusInternalServerError, "Internal server error"},
}

// APIError is the body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Abort writes the error envelope for code and stops the handler chain.
// An empty message falls back to the code's default.
func Abort(c *gin.Context, code, message string) {
	entry, ok := codeStatus[code]
	if !ok {
		entry = codeStatus[ErrCodeInternalError]
		code = ErrCodeInternalError
	}
	if message == "" {
		message = entry.message
	}
	c.AbortWithStatusJSON(entry.status, &APIError{Code: code, Message: message})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	Abort(c, ErrCodeUnauthorized, message)
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context) {
	Abort(c, ErrCodeInvalidCredentials, "")
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	Abort(c, ErrCodeNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	Abort(c, ErrCodeInvalidInput, message)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	Abort(c, ErrCodeConflict, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	Abort(c, ErrCodeInternalError, message)
}
