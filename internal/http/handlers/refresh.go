package handlers

import (
	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/viewmodels"
	"github.com/modboard/modboard/internal/http/views"
)

// HandleRefreshPost runs a refresh cycle right away and returns to the tab
// the operator was on. Concurrent requests share one cycle.
func (h *Handlers) HandleRefreshPost(c *echo.Context) error {
	tab := dashboard.ParseTab(c.FormValue("tab"), h.Dashboard.Features())
	location := views.TabURL(tab.String())

	if err := h.Dashboard.RefreshNow(c.Request().Context()); err != nil {
		c.Logger().Warn("manual refresh incomplete", "err", err)
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "warning",
			Title:       "Refresh incomplete",
			Description: "Some resources could not be loaded. See the banner for details.",
		})
		return redirect(c, location)
	}
	toastSuccess(c, "Data refreshed", "")
	return redirect(c, location)
}
