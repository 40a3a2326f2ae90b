package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

// HandleSnapshot serves the current snapshot as JSON. Drafts are not
// included.
func (h *Handlers) HandleSnapshot(c *echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, h.Dashboard.Snapshot())
}
