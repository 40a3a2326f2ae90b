package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/views"
)

// HandleSettingsPost edits the operator's settings draft. action=save sends
// the draft to the bot, action=reset discards it, anything else keeps the
// edited draft.
func (h *Handlers) HandleSettingsPost(c *echo.Context) error {
	ctx := c.Request().Context()
	if err := c.Request().ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := c.Request().PostForm
	location := views.TabURL(dashboard.TabSettings.String())

	action := strings.ToLower(strings.TrimSpace(form.Get("action")))
	if action == "reset" {
		h.clearSettingsDraft(ctx)
		setFlashToast(c, infoToast("Changes discarded"))
		return redirect(c, location)
	}

	values := make(map[string]string, len(botapi.SettingKeys))
	for _, key := range botapi.SettingKeys {
		if vs, ok := form[key]; ok && len(vs) > 0 {
			values[key] = vs[0]
		}
	}
	draft := dashboard.EditSettings(h.currentSettings(ctx, h.Dashboard.Snapshot()), values)

	if action != "save" {
		h.putSettingsDraft(ctx, draft)
		return redirect(c, location)
	}

	if _, err := h.Dashboard.SaveSettings(ctx, draft); err != nil {
		h.putSettingsDraft(ctx, draft)
		toastFailure(c, "Could not save settings", err)
		return redirect(c, location)
	}
	h.clearSettingsDraft(ctx)
	toastSuccess(c, "Settings saved", "")
	return redirect(c, location)
}
