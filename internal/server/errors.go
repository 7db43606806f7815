package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/draft"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrInvalidRequest = errors.New("invalid_request")
)

// domainValidation maps input errors to the field they concern.
var domainValidation = []struct {
	err   error
	field string
}{
	{domain.ErrInvalidID, "id"},
	{domain.ErrInvalidTemplate, "template"},
	{domain.ErrInvalidPaidIndicator, "paidIndicator"},
	{domain.ErrPaidDateRequired, "paidDate"},
	{domain.ErrInvalidPaidDate, "paidDate"},
	{domain.ErrPaidDateWithoutPayment, "paidDate"},
	{domain.ErrLastItem, "items"},
	{domain.ErrItemOutOfRange, "index"},
	{domain.ErrUnknownItemField, "field"},
	{domain.ErrInvalidLogo, "companyLogo"},
	{domain.ErrInvalidExportFormat, "format"},
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if errors.Is(err, draft.ErrInvalidDraft) {
		fields := draft.FieldErrors(err)
		out := make([]ValidationError, 0, len(fields))
		for _, fe := range fields {
			out = append(out, ValidationError{
				Field:   fe.Field,
				Code:    fe.Reason,
				Message: fe.Error(),
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  out,
		}
	}

	for _, v := range domainValidation {
		if errors.Is(err, v.err) {
			return http.StatusBadRequest, errorPayload{
				Type:    "validation_error",
				Message: "validation error",
				Errors: []ValidationError{
					{Field: v.field, Code: v.err.Error(), Message: validationErrorMessage(v.err)},
				},
			}
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrPaidIsTerminal):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog returns the error type and code used in request logs.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	} else if status != http.StatusInternalServerError {
		code = err.Error()
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isNotFoundError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrSessionNotFound)
}

func validationErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid invoice id"
	case errors.Is(err, domain.ErrInvalidTemplate):
		return "template must be one of modern, classic, minimal, bold, elegant"
	case errors.Is(err, domain.ErrInvalidPaidIndicator):
		return "paidIndicator must be stamp or text"
	case errors.Is(err, domain.ErrPaidDateRequired):
		return "paidDate is required"
	case errors.Is(err, domain.ErrInvalidPaidDate):
		return "paidDate must be YYYY-MM-DD"
	case errors.Is(err, domain.ErrPaidDateWithoutPayment):
		return "paidDate requires the invoice to be paid"
	case errors.Is(err, domain.ErrLastItem):
		return "an invoice needs at least one item"
	case errors.Is(err, domain.ErrItemOutOfRange):
		return "item index out of range"
	case errors.Is(err, domain.ErrUnknownItemField):
		return "field must be description, quantity or rate"
	case errors.Is(err, domain.ErrInvalidLogo):
		return "logo must be a data:image URI"
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return "format must be pdf, html or print"
	default:
		return err.Error()
	}
}
