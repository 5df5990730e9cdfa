package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConcurrency:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// Respond converts a use case error into a JSON response. Domain errors keep
// their code; anything else is logged and hidden behind internal_error.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		body := gin.H{
			"error_code": be.Code,
			"message":    messageFor(be),
		}
		for k, v := range be.Fields {
			body[k] = v
		}
		c.AbortWithStatusJSON(StatusFor(be.Kind), body)
		return
	}

	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetString("request_id")).
		Msg("unhandled error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPError{
		Code:    "internal_error",
		Message: "Internal server error.",
	})
}

var messages = map[string]string{
	"invalid_request":                 "Invalid request body.",
	"invalid_date":                    "Date must use the YYYY-MM-DD format.",
	"invalid_time":                    "Time must use the HH:MM format.",
	"invalid_date_range":              "Start date must not be after end date.",
	"invalid_period":                  "Period must be day, month or year.",
	"report_range_too_large":          "Date range is too large for a report.",
	"invalid_report_kind":             "Report kind must be excel or word.",
	"invalid_date_or_time":            "Date or time is not valid.",
	"service_required":                "A service is required.",
	"service_inactive":                "Service is no longer offered.",
	"invalid_patient_count":           "Patient count must be at least 1.",
	"patient_count_exceeds_record":    "Patient count exceeds the record capacity.",
	"patient_count_below_completions": "Patient count is lower than an existing completion.",
	"invalid_state":                   "The record cannot be completed in its current state.",
	"invalid_status":                  "Unknown status.",
	"invalid_status_transition":       "Status transition is not allowed.",
	"income_linked_to_record":         "Record incomes are removed by deleting the record.",
	"client_has_records":              "Client has records. Retry with cascade=true to remove them.",
	"service_has_records":             "Service has records. Retry with cascade=true to remove them.",
	"record_not_found":                "Record not found.",
	"client_not_found":                "Client not found.",
	"service_not_found":               "Service not found.",
	"user_not_found":                  "User not found.",
	"employee_not_found":              "Employee not found.",
	"income_not_found":                "Income not found.",
	"expense_not_found":               "Expense not found.",
	"inventory_item_not_found":        "Inventory item not found.",
	"invalid_id":                      "Invalid id.",
	"inventory_negative_quantity":     "Quantity cannot go below zero.",
	"invalid_quantity":                "Quantity must be greater than zero.",
	"invalid_amount":                  "Amount must be greater than zero.",
	"duplicate_entry":                 "An entry with the same key already exists.",
	"referenced_row":                  "The row is referenced by other data.",
	"invalid_credentials":             "Invalid email or password.",
	"invalid_token":                   "Invalid or expired token.",
	"invalid_role":                    "Role must be admin, manager or employee.",
	"registration_closed":             "An administrator already exists.",
	"rate_limited":                    "Too many attempts. Try again later.",
	"forbidden":                       "You do not have permission for this action.",
	"concurrent_update":               "The record was modified concurrently. Retry the request.",
}

func messageFor(be BusinessError) string {
	if m, ok := messages[be.Code]; ok {
		return m
	}
	return be.Code
}
