package handlers

import (
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/viewmodels"
	"github.com/modboard/modboard/internal/http/views"
)

// HandleReviewPost approves or denies an application on behalf of the
// signed-in operator. A review the bot declines leaves the page unchanged.
func (h *Handlers) HandleReviewPost(c *echo.Context) error {
	ctx := c.Request().Context()
	location := views.TabURL(dashboard.TabApplications.String())

	action := botapi.ReviewAction(strings.ToLower(strings.TrimSpace(c.FormValue("action"))))
	if !action.Valid() {
		setFlashToast(c, viewmodels.ToastViewData{Category: "warning", Title: "Choose approve or deny"})
		return redirect(c, location)
	}

	reviewed, err := h.Dashboard.ReviewApplication(ctx, c.Param("id"), action, h.principal(c))
	if err != nil {
		toastFailure(c, "Could not review application", err)
		return redirect(c, location)
	}
	if reviewed {
		title := "Application approved"
		if action == botapi.ReviewDeny {
			title = "Application denied"
		}
		toastSuccess(c, title, "")
	}
	return redirect(c, location)
}
