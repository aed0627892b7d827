package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/risk"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

const (
	ErrorCodeValidation          = "VALIDATION_ERROR"
	ErrorCodeInvalidJSON         = "INVALID_JSON"
	ErrorCodeInvalidIDFormat     = "INVALID_ID_FORMAT"
	ErrorCodeUnseenCategory      = "UNSEEN_CATEGORY"
	ErrorCodeNotFound            = "NOT_FOUND"
	ErrorCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, httpStatus int, code, message string, details any) {
	c.JSON(httpStatus, APIError{Code: code, Message: message, Details: details})
}

// RespondWithSuccess sends data as JSON, or no body when data is nil.
func RespondWithSuccess(c *gin.Context, httpStatus int, data any) {
	if data != nil {
		c.JSON(httpStatus, data)
		return
	}
	c.Status(httpStatus)
}

// respondWithServiceError maps a service error to its HTTP status. Bad input
// is a 4xx; a missing model or dataset is reported as unavailable.
func respondWithServiceError(c *gin.Context, err error) {
	switch risk.Kind(err) {
	case risk.KindInvalidInput:
		RespondWithError(c, http.StatusBadRequest, ErrorCodeValidation, "Invalid applicant.", gin.H{"reason": err.Error()})
	case risk.KindUnseenCategory:
		RespondWithError(c, http.StatusBadRequest, ErrorCodeUnseenCategory, "Applicant has a category the model was not trained on.", gin.H{"reason": err.Error()})
	case risk.KindNotFound:
		RespondWithError(c, http.StatusNotFound, ErrorCodeNotFound, "Assessment not found.", nil)
	case risk.KindUnavailable:
		RespondWithError(c, http.StatusServiceUnavailable, ErrorCodeServiceUnavailable, "Risk model unavailable.", nil)
	default:
		RespondWithError(c, http.StatusInternalServerError, ErrorCodeInternalServerError, "Failed to process request.", nil)
	}
}
