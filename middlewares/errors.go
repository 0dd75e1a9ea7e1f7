package middlewares

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/repositories"
	"HospitalAdmin/services"
	"HospitalAdmin/workflow"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// AbortWithError stops the chain with the error envelope.
func AbortWithError(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code, Details: details})
}

// HttpError classifies err, logs it and writes the matching response.
// Business-rule failures keep their message; unexpected failures are
// reported as fallback.
func HttpError(c *gin.Context, fallback string, err error) {
	status, code, message := Classify(err)
	var details interface{}

	var fields forms.FieldErrors
	if errors.As(err, &fields) {
		details = fields
	}
	if message == "" {
		message = fallback
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(fallback)
	} else {
		log.Debug().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(message)
	}
	_ = c.Error(err)
	AbortWithError(c, status, code, message, details)
}

// Classify maps an error onto an HTTP status, a code, and a message safe to
// show. The message is empty when the caller's fallback should be used.
func Classify(err error) (int, string, string) {
	var fields forms.FieldErrors
	if errors.As(err, &fields) {
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Please correct the highlighted fields"
	}

	rule, isRule := services.Describe(err)
	switch {
	case errors.Is(err, forms.ErrMalformedBody):
		return http.StatusBadRequest, "MALFORMED_BODY", "Request body is malformed"
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, services.ErrNotImplemented):
		return http.StatusNotImplemented, "NOT_IMPLEMENTED", "This module is not available yet"
	case errors.Is(err, repositories.ErrHasDependents):
		return http.StatusConflict, "HAS_DEPENDENTS", rule
	case errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict, "CONFLICT", rule
	case errors.Is(err, repositories.ErrBedUnavailable):
		return http.StatusConflict, "BED_UNAVAILABLE", rule
	case errors.Is(err, repositories.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", rule
	case errors.Is(err, repositories.ErrInvalidReference):
		return http.StatusConflict, "INVALID_REFERENCE", rule
	case errors.Is(err, workflow.ErrDialogBusy),
		errors.Is(err, workflow.ErrNotOpen),
		errors.Is(err, workflow.ErrSubmitting):
		return http.StatusConflict, "DIALOG_STATE", err.Error()
	case isRule:
		return http.StatusConflict, "BUSINESS_RULE", rule
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", ""
}
