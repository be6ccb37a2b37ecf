package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// RouterConfig describes one HTTP API: its OpenAPI document, the name its Swagger UI is
// registered under and the check behind GET /health.
type RouterConfig struct {
	Name   string
	Doc    *openapi3.T
	Logger *slog.Logger
	Health func(ctx context.Context) error
}

// NewRouter returns an echo instance with recovery, request ids, logging, request
// validation against the document, GET /health and Swagger UI under /swagger/.
// API handlers are registered by the caller through the generated RegisterHandlers.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	validator, err := OpenAPIValidator(cfg.Doc)
	if err != nil {
		return nil, fmt.Errorf("openapi validator: %w", err)
	}
	if err = registerSwagger(cfg.Name, cfg.Doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		ContextLogger(cfg.Logger),
		AccessLog(cfg.Logger),
		validator,
	)

	e.GET("/health", func(ctx echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(ctx.Request().Context()); err != nil {
				return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(cfg.Name)))

	return e, nil
}

type swaggerDoc struct {
	doc string
}

func (d swaggerDoc) ReadDoc() string {
	return d.doc
}

var swaggerMu sync.Mutex

// registerSwagger publishes doc to swag once per name; later calls keep the first one.
func registerSwagger(name string, doc *openapi3.T) error {
	swaggerMu.Lock()
	defer swaggerMu.Unlock()

	if swag.GetSwagger(name) != nil {
		return nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s openapi document: %w", name, err)
	}
	swag.Register(name, swaggerDoc{doc: string(raw)})
	return nil
}
