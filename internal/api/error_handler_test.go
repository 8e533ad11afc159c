package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, log zerolog.Logger, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(log)(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandler_DomainError(t *testing.T) {
	rec, body := renderError(t, zerolog.Nop(), domain.Validation(domain.MsgDiscountTooHigh))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, http.StatusBadRequest, body["statusCode"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, domain.MsgDiscountTooHigh, body["message"])
}

func TestHTTPErrorHandler_RouteNotFound(t *testing.T) {
	rec, body := renderError(t, zerolog.Nop(), echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "API route not found", body["message"])
}

func TestHTTPErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	var buf bytes.Buffer
	rec, body := renderError(t, zerolog.New(&buf), errors.New("dial tcp 10.0.0.3:27017: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.Contains(t, buf.String(), "connection refused")
}
