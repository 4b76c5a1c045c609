package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/ports"
	"github.com/engineeringdigest/ecommerce-seeder/internal/infrastructure/http/handlers"
)

// NewRouter builds the status server exposed while a seed run is in flight.
func NewRouter(reporter ports.ProgressReporter, deps map[string]handlers.Pinger, gatherer prometheus.Gatherer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("status request")
			return nil
		},
	}))

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps)
	statusHandler := handlers.NewStatusHandler(reporter)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/status", statusHandler.Status)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return e
}

// Serve starts e on addr in the background and returns a function that shuts
// it down.
func Serve(e *echo.Echo, addr string, log zerolog.Logger) func(ctx context.Context) {
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("status server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("status server listening")

	return func(ctx context.Context) {
		if err := e.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("status server shutdown")
		}
	}
}
