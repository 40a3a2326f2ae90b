package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/modboard/modboard/internal/auth"
	"github.com/modboard/modboard/internal/http/authn"
	"github.com/modboard/modboard/internal/http/viewmodels"
	"github.com/modboard/modboard/internal/http/views"
)

const invalidLoginMessage = "Invalid user ID or password."

func (h *Handlers) HandleLoginGet(c *echo.Context) error {
	if h.Sessions == nil || h.Auth == nil {
		return errors.New("auth sessions not configured")
	}

	if _, ok := authn.LoadPrincipal(c, h.Sessions, h.Auth); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		Next:      authn.SanitizeNext(c.QueryParam("next")),
		Toast:     popFlashToast(c),
	}
	return h.RenderComponent(c, views.LoginPage(data))
}

func (h *Handlers) HandleLoginPost(c *echo.Context) error {
	if h.Sessions == nil || h.Auth == nil {
		return errors.New("auth sessions not configured")
	}

	ctx := c.Request().Context()
	userID := auth.NormalizeUserID(c.FormValue("user_id"))
	password := c.FormValue("password")
	next := authn.SanitizeNext(c.FormValue("next"))

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		UserID:    userID,
		Next:      next,
	}

	if userID == "" || strings.TrimSpace(password) == "" {
		data.ErrorMessage = invalidLoginMessage
		return h.renderLogin(c, data)
	}

	principal, err := h.Auth.Authenticate(ctx, userID, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Logger().Info("login rejected", "user_id", userID, "ip", c.RealIP())
			data.ErrorMessage = invalidLoginMessage
			return h.renderLogin(c, data)
		}
		return err
	}

	if err := h.Sessions.RenewToken(ctx); err != nil {
		return err
	}
	h.Sessions.Put(ctx, authn.SessionKeyUserID, principal.UserID)
	c.Logger().Info("operator signed in", "user_id", principal.UserID, "ip", c.RealIP())

	if next != "" {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) renderLogin(c *echo.Context, data viewmodels.LoginViewData) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusUnauthorized)
	if err := views.LoginPage(data).Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

func (h *Handlers) HandleLogoutPost(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	if err := h.Sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Signed out",
	})
	return redirect(c, "/login")
}
