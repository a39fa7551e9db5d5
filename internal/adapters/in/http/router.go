package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// HealthCheck probes one backing service. A non-nil error marks the service
// unhealthy.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries the optional collaborators of the router.
type RouterConfig struct {
	Logger *slog.Logger

	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// HealthChecks are run by GET /health, keyed by backend name.
	HealthChecks map[string]HealthCheck
}

// NewRouter wires the API handlers behind request logging and OpenAPI
// request validation, plus the health, metrics and swagger endpoints.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(swagger); err != nil {
		return nil, err
	}

	validator, err := requestValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(validator)

	e.GET("/health", healthHandler(cfg.HealthChecks))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	servers.RegisterHandlers(e, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}

// requestValidator rejects API requests that do not match the OpenAPI
// document. Requests outside the document are passed through.
func requestValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Match on path only, whatever host the service is reached through.
	swagger.Servers = nil

	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	options := &openapi3filter.Options{MultiError: true}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				details := validationMessages(validationErr)
				return c.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: "Request does not match the API schema",
					Details: &details,
				})
			}

			return next(c)
		}
	}, nil
}

func validationMessages(err error) []string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(multi))
	for _, e := range multi {
		messages = append(messages, validationMessages(e)...)
	}
	return messages
}

func healthHandler(checks map[string]HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		failures := map[string]string{}
		for name, check := range checks {
			if err := check(c.Request().Context()); err != nil {
				failures[name] = err.Error()
			}
		}
		if len(failures) > 0 {
			return c.JSON(http.StatusServiceUnavailable, failures)
		}
		return c.String(http.StatusOK, "Healthy")
	}
}

var swaggerDocMu sync.Mutex

type openAPIDoc struct {
	doc string
}

func (d openAPIDoc) ReadDoc() string {
	return d.doc
}

// registerSwaggerDoc publishes the OpenAPI document to the swagger UI. The
// swag registry is process-wide and refuses a second registration.
func registerSwaggerDoc(swagger *openapi3.T) error {
	swaggerDocMu.Lock()
	defer swaggerDocMu.Unlock()

	if swag.GetSwagger(swag.Name) != nil {
		return nil
	}

	doc, err := swagger.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to render OpenAPI document: %w", err)
	}
	swag.Register(swag.Name, openAPIDoc{doc: string(doc)})
	return nil
}
