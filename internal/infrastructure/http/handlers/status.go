package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/ports"
)

// StatusHandler handles GET /status with the progress of the running seed.
type StatusHandler struct {
	reporter ports.ProgressReporter
}

func NewStatusHandler(reporter ports.ProgressReporter) *StatusHandler {
	return &StatusHandler{reporter: reporter}
}

func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reporter.Progress())
}
