package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	_ "fulfillment/internal/adapters/in/http/docs" // swagger spec registration
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	apiPrefix            = "/api/v1"
	authenticatedUserKey = "authenticated_user_id"
)

var tracer = otel.Tracer("fulfillment/http")

// RegisterRoutes mounts the order API, health probe and swagger UI on e.
// A nil identity leaves the API unauthenticated.
func RegisterRoutes(e *echo.Echo, server *Server, identity ports.IdentityProvider, logger *slog.Logger) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(tracing())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(apiPrefix)
	if identity != nil {
		api.Use(keyAuth(identity))
	}

	api.POST("/orders", server.CreateOrder)
	api.GET("/orders", server.GetOrders)
	api.GET("/orders/:id", server.GetOrder)
	api.PUT("/orders/:id", server.UpdateOrder)
	api.PATCH("/orders/:id/status", server.UpdateOrderStatus)
	api.DELETE("/orders/:id", server.DeleteOrder)
}

// keyAuth accepts "Authorization: Bearer <token>" and stores the caller's user id
// in the echo context.
func keyAuth(identity ports.IdentityProvider) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			caller, err := identity.ValidateToken(c.Request().Context(), token)
			if errors.Is(err, ports.ErrUnauthenticated) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			c.Set(authenticatedUserKey, caller.UserID)
			return true, nil
		},
	})
}

// tracing starts a server span per request, continuing any incoming W3C trace context.
func tracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
			ctx, span := tracer.Start(ctx, req.Method+" "+c.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("http.route", c.Path()),
				),
			)
			defer span.End()

			c.SetRequest(req.WithContext(ctx))
			err := next(c)

			status := c.Response().Status
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if err != nil || status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			return err
		}
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if userID, ok := c.Get(authenticatedUserKey).(kernel.ID); ok {
				attrs = append(attrs, slog.Int64("user_id", userID.Int64()))
			}
			logger.LogAttrs(context.WithoutCancel(c.Request().Context()), level, "request", attrs...)
			return nil
		},
	})
}
