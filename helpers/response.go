package helpers

import "github.com/gin-gonic/gin"

// ApiResponse is the envelope every successful handler returns.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ApiError is the envelope every failed handler returns. Errors carries
// optional structured detail (validation messages etc.).
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func NewApiResponse(statusCode int, data interface{}, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	}
}

func NewApiError(statusCode int, message string, errs ...string) ApiError {
	if errs == nil {
		errs = []string{}
	}
	return ApiError{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}

func RespondJSON(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, NewApiResponse(statusCode, data, message))
}

func RespondError(c *gin.Context, statusCode int, message string, errs ...string) {
	c.JSON(statusCode, NewApiError(statusCode, message, errs...))
}
