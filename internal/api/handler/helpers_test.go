package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/api/middleware"
	"github.com/abodeconnect/marketplace-api/internal/api/response"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// tokens maps a bearer token to the user id it authenticates.
type tokens map[string]string

func (t tokens) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.Unauthorized(domain.MsgNoToken)
	}
	id, ok := t[token]
	if !ok {
		return "", domain.Forbidden(domain.MsgInvalidToken)
	}
	return id, nil
}

var testTokens = tokens{"alice-token": "user-alice", "bob-token": "user-bob"}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code, msg, _ := response.FromError(err)
		_ = response.Fail(c, code, msg)
	}
	return e
}

func requireAuth() echo.MiddlewareFunc {
	return middleware.Auth(testTokens)
}

// call performs a request against e and decodes the envelope.
func call(t *testing.T, e *echo.Echo, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := newJSONRequest(method, path, body)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := serve(e, req)

	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
