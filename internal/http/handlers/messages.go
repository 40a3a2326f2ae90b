package handlers

import (
	"errors"

	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/auth"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/viewmodels"
	"github.com/modboard/modboard/internal/http/views"
)

func (h *Handlers) HandleMessagesPost(c *echo.Context) error {
	ctx := c.Request().Context()
	location := views.TabURL(dashboard.TabMessages.String())

	toUser := auth.NormalizeUserID(c.FormValue("to_user"))
	err := h.Dashboard.SendMessage(ctx, h.principal(c), toUser, c.FormValue("message"))
	switch {
	case errors.Is(err, dashboard.ErrEmptyMessage):
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "warning",
			Title:       "Nothing sent",
			Description: "Enter a recipient and a message.",
		})
	case err != nil:
		toastFailure(c, "Message not sent", err)
	default:
		toastSuccess(c, "Message sent", "Delivered to "+toUser+".")
	}
	return redirect(c, location)
}
