// Package response renders the JSON envelope shared by every endpoint and
// maps errors onto it.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// Envelope is the body of every API response, successful or not. Count is
// the number of records in Data unless a list endpoint sets richer counters.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Count      any    `json:"count"`
	Data       any    `json:"data"`
}

type empty struct{}

// InternalMessage is returned for every unexpected failure.
const InternalMessage = "Internal Server Error"

// OK writes a successful envelope around a single record. A nil data renders
// as an empty object with a zero count.
func OK(c echo.Context, status int, message string, data any) error {
	count := 1
	if data == nil {
		count, data = 0, empty{}
	}
	return c.JSON(status, Envelope{
		StatusCode: status,
		Success:    true,
		Message:    message,
		Count:      count,
		Data:       data,
	})
}

// List writes a successful envelope whose count describes data.
func List(c echo.Context, message string, count, data any) error {
	return c.JSON(http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Success:    true,
		Message:    message,
		Count:      count,
		Data:       data,
	})
}

// Fail writes an error envelope.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{
		StatusCode: status,
		Message:    message,
		Count:      0,
		Data:       empty{},
	})
}

// FromError resolves the status code and client-facing message of err.
// known is false when err is not part of the error taxonomy; such errors
// must be logged by the caller and never shown to clients.
func FromError(err error) (status int, message string, known bool) {
	var de *domain.Error
	if errors.As(err, &de) {
		return statusOf(de.Kind), de.Message, true
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict):
		return statusOf(err), err.Error(), true
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, InternalMessage, false
		}
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	return http.StatusInternalServerError, InternalMessage, false
}

func statusOf(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
