package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Machine-readable error kinds carried in the response envelope.
const (
	CodeMissingFields         = "MISSING_FIELDS"
	CodeInvalidEmail          = "INVALID_EMAIL"
	CodeInvalidLanguage       = "INVALID_LANGUAGE"
	CodeRecaptchaRequired     = "RECAPTCHA_REQUIRED"
	CodeRecaptchaFailed       = "RECAPTCHA_FAILED"
	CodeRecaptchaServiceError = "RECAPTCHA_SERVICE_ERROR"
	CodeRateLimited           = "RATE_LIMITED"
	CodeValidationError       = "VALIDATION_ERROR"
	CodeDuplicateEntry        = "DUPLICATE_ENTRY"
	CodeInvalidTimeframe      = "INVALID_TIMEFRAME"
	CodeInvalidDate           = "INVALID_DATE"
	CodeNotFound              = "NOT_FOUND"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error response with a machine-readable error kind.
func Fail(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, ResponseData{
		Success: false,
		Message: message,
		Error:   code,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, code string, message string) {
	Fail(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a 409 Conflict error response.
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, CodeDuplicateEntry, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, CodeRateLimited, message)
}

// BadGateway sends a 502 error response for upstream dependency failures.
func BadGateway(c *gin.Context, code string, message string) {
	Fail(c, http.StatusBadGateway, code, message)
}

// InternalServerError sends a 500 response. The underlying error detail is
// only exposed outside release mode.
func InternalServerError(c *gin.Context, message string, err error) {
	if err != nil && gin.Mode() != gin.ReleaseMode {
		message = message + ": " + err.Error()
	}
	Fail(c, http.StatusInternalServerError, CodeInternalError, message)
}
