package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestContext(t *testing.T, method, path, body string) echo.Context {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageHandler_Create_ValidationErrorShape(t *testing.T) {
	c := newTestContext(t, http.MethodPost, "/api/pages", `{"slug":"no-title"}`)
	c.Set("admin", &model.Admin{ID: 1, Username: "admin", Role: model.RoleAdmin})

	h := NewPageHandler(nil)
	err := h.Create(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	// Validation failures carry the same {error, code} body as every other
	// error path.
	resp, ok := httpErr.Message.(errors.ErrorResponse)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION", resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestPageHandler_Create_InvalidIDShape(t *testing.T) {
	c := newTestContext(t, http.MethodPut, "/api/pages/abc", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	_, err := parseIDParam(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	resp, ok := httpErr.Message.(errors.ErrorResponse)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_ID", resp.Code)
}
