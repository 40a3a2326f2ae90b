// Package handlers contains HTTP handler logic split by domain.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/modboard/modboard/internal/auth/providers"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/config"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/authn"
	"github.com/modboard/modboard/internal/http/viewmodels"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

// DashboardClient is the dashboard state the handlers read and mutate.
// *dashboard.Client implements it.
type DashboardClient interface {
	Snapshot() *dashboard.Snapshot
	Features() dashboard.Features
	RefreshNow(ctx context.Context) error
	SaveSettings(ctx context.Context, draft botapi.Settings) (botapi.Settings, error)
	SaveQuestions(ctx context.Context, qtype string, questions []string) ([]string, error)
	ReviewApplication(ctx context.Context, id string, action botapi.ReviewAction, reviewerID string) (bool, error)
	SendMessage(ctx context.Context, fromStaff, toUser, message string) error
}

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg       config.Config
	Dashboard DashboardClient
	Sessions  *scs.SessionManager
	Auth      providers.Provider
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c *echo.Context, title string) viewmodels.LayoutData {
	principal, ok := authn.PrincipalFromContext(c)
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return viewmodels.LayoutData{
		Title:      title,
		CSRFToken:  csrfToken,
		UserID:     principal.UserID,
		IsAdmin:    ok && principal.IsAdmin(),
		Toast:      popFlashToast(c),
		ActivePath: c.Request().URL.Path,
	}
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c *echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c *echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}

func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *Handlers) principal(c *echo.Context) string {
	p, _ := authn.PrincipalFromContext(c)
	return p.UserID
}
