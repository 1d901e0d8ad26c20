//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"myStorefront/pkg/utils"

	"github.com/labstack/echo/v4"
)

func init() {
	utils.SetJWTSecret("test-secret")
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := AuthMiddleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	return rec, c, called
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := utils.GenerateJWT("42", "customer", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	badUser, _ := utils.GenerateJWT("not-a-number", "customer", time.Hour)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"non numeric user", "Bearer " + badUser, http.StatusForbidden},
		{"valid", "Bearer " + valid, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c, called := runAuth(t, tt.header)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status == http.StatusNoContent {
				if !called {
					t.Fatal("next handler not called")
				}
				if c.Get("user_id").(uint) != 42 || c.Get("role").(string) != "customer" {
					t.Fatalf("context = %v %v", c.Get("user_id"), c.Get("role"))
				}
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	for role, want := range map[string]int{"admin": http.StatusNoContent, "customer": http.StatusForbidden} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("role", role)

		_ = AdminOnly()(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)
		if rec.Code != want {
			t.Errorf("role %s: status = %d, want %d", role, rec.Code, want)
		}
	}
}

func TestTraceID(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderTraceID, "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	_ = TraceID()(func(c echo.Context) error {
		seen = utils.TraceIDFromContext(c.Request().Context())
		return nil
	})(c)

	if seen != "abc-123" || rec.Header().Get(HeaderTraceID) != "abc-123" {
		t.Fatalf("trace id = %q, header = %q", seen, rec.Header().Get(HeaderTraceID))
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = TraceID()(func(c echo.Context) error { return nil })(c)
	if rec.Header().Get(HeaderTraceID) == "" {
		t.Fatal("trace id not generated")
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/missing", nil), rec)
	ErrorHandler(echo.ErrNotFound, c)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"NOT_FOUND"`) {
		t.Fatalf("404: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(errors.New("boom"), c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("500: %d", rec.Code)
	}
}
