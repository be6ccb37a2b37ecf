package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodorder/api"
	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, health func(ctx context.Context) error) *echo.Echo {
	t.Helper()

	doc, err := api.Orders(t.Context())
	require.NoError(t, err)

	e, err := httpin.NewRouter(httpin.RouterConfig{
		Name:   "orders",
		Doc:    doc,
		Logger: logging.Discard(),
		Health: health,
	})
	require.NoError(t, err)

	e.POST("/orders", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusCreated)
	})
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	healthy := newRouter(t, func(context.Context) error { return nil })
	rec := serve(healthy, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	unhealthy := newRouter(t, func(context.Context) error { return errors.New("db down") })
	rec = serve(unhealthy, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_ValidatesRequestsAgainstDocument(t *testing.T) {
	e := newRouter(t, nil)

	rec := serve(e, http.MethodPost, "/orders", `{"customer_id":1,"restaurant_id":5,"total_price":10,"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":400`)

	rec = serve(e, http.MethodPost, "/orders", `{"customer_id":1,"restaurant_id":5,"total_price":10,"items":[3]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_RequestIDIsReturned(t *testing.T) {
	e := newRouter(t, nil)

	rec := serve(e, http.MethodGet, "/health", "")

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_UnknownRouteRendersJSONError(t *testing.T) {
	e := newRouter(t, nil)

	rec := serve(e, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"message":"Not Found"}`, rec.Body.String())
}

func TestRouter_ServesSwaggerDocument(t *testing.T) {
	e := newRouter(t, nil)

	rec := serve(e, http.MethodGet, "/swagger/doc.json", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/orders/{id}")
}
