package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/http/viewmodels"
)

const (
	flashToastCookieName = "modboard_toast"
	flashToastMaxAge     = 30
)

// setFlashToast stores a toast for the next rendered page. The cookie
// survives exactly one redirect.
func setFlashToast(c *echo.Context, toast viewmodels.ToastViewData) {
	toast, ok := cleanToast(toast)
	if !ok {
		return
	}
	payload, err := json.Marshal(toast)
	if err != nil {
		return
	}
	c.SetCookie(toastCookie(base64.RawURLEncoding.EncodeToString(payload), flashToastMaxAge))
}

func popFlashToast(c *echo.Context) *viewmodels.ToastViewData {
	cookie, err := c.Cookie(flashToastCookieName)
	if err != nil || cookie == nil {
		return nil
	}
	expired := toastCookie("", -1)
	expired.Expires = time.Unix(0, 0)
	c.SetCookie(expired)

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var toast viewmodels.ToastViewData
	if err := json.Unmarshal(raw, &toast); err != nil {
		return nil
	}
	toast, ok := cleanToast(toast)
	if !ok {
		return nil
	}
	return &toast
}

func toastCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     flashToastCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func cleanToast(toast viewmodels.ToastViewData) (viewmodels.ToastViewData, bool) {
	toast.Category = normalizeToastCategory(toast.Category)
	toast.Title = strings.TrimSpace(toast.Title)
	toast.Description = strings.TrimSpace(toast.Description)
	return toast, toast.Title != "" || toast.Description != ""
}

func normalizeToastCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case "success", "error", "warning", "info":
		return category
	default:
		return "info"
	}
}

func infoToast(title string) viewmodels.ToastViewData {
	return viewmodels.ToastViewData{Category: "info", Title: title}
}

func toastSuccess(c *echo.Context, title, description string) {
	setFlashToast(c, viewmodels.ToastViewData{Category: "success", Title: title, Description: description})
}

// toastFailure reports a failed bot API mutation with a fixed title and a
// short detail derived from err.
func toastFailure(c *echo.Context, title string, err error) {
	c.Logger().Warn(strings.ToLower(title), "path", c.Request().URL.Path, "err", err)
	setFlashToast(c, viewmodels.ToastViewData{Category: "error", Title: title, Description: mutationErrorDetail(err)})
}

func mutationErrorDetail(err error) string {
	var rejected *botapi.RejectedError
	if errors.As(err, &rejected) && rejected.Reason != "" {
		return rejected.Reason
	}
	var apiErr *botapi.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("The bot API answered %d %s.", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
	}
	return "The bot API could not be reached."
}
